// Package forms implements the generic intake form used by every service
// subcategory. A Definition declares the fields, their option lists and the
// required keys; the engine applies edits to records and derives one opaque
// validity flag from required-field presence.
//
// There is no cross-field or format validation and no per-field message:
// a record is either valid or it is not.
package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType is the input control of a field.
type FieldType string

const (
	TypeSelect        FieldType = "select"
	TypeCheckboxGroup FieldType = "checkbox-group"
	TypeRadioGroup    FieldType = "radio-group"
	TypeText          FieldType = "text"
	TypeTextarea      FieldType = "textarea"
	TypeCheckbox      FieldType = "checkbox"
	TypeNumber        FieldType = "number"
)

// ValueKind returns the kind of value the field type holds, or KindUnset for unknown types.
func (t FieldType) ValueKind() ValueKind {
	switch t {
	case TypeSelect, TypeRadioGroup, TypeText, TypeTextarea:
		return KindText
	case TypeCheckboxGroup:
		return KindList
	case TypeCheckbox:
		return KindBool
	case TypeNumber:
		return KindNumber
	}
	return KindUnset
}

// HasOptions reports whether the field type picks from a static option list.
func (t FieldType) HasOptions() bool {
	return t == TypeSelect || t == TypeCheckboxGroup || t == TypeRadioGroup
}

// Field is one labelled input of a form.
type Field struct {
	Key         string    `yaml:"key" json:"key"`
	Label       string    `yaml:"label" json:"label"`
	Type        FieldType `yaml:"type" json:"type"`
	Options     []string  `yaml:"options,omitempty" json:"options,omitempty"`
	Placeholder string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required    bool      `yaml:"-" json:"required"`
}

// Definition describes one subcategory intake form.
type Definition struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	Fields   []Field  `yaml:"fields" json:"fields"`
	Required []string `yaml:"required" json:"required"`

	index map[string]int
}

// Edit is a single field change proposed by the user.
type Edit struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

var validate = validator.New()

func (d *Definition) buildIndex() {
	d.index = make(map[string]int, len(d.Fields))
	for i, f := range d.Fields {
		d.index[f.Key] = i
	}
}

// Field returns the field with the given key.
func (d *Definition) Field(key string) (Field, bool) {
	if d.index == nil {
		for _, f := range d.Fields {
			if f.Key == key {
				return f, true
			}
		}
		return Field{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Field{}, false
	}
	return d.Fields[i], true
}

// NewRecord returns the record a fresh form mount starts from: every field set to the empty value of its kind.
func (d *Definition) NewRecord() Record {
	rec := make(Record, len(d.Fields))
	for _, f := range d.Fields {
		switch f.Type.ValueKind() {
		case KindText:
			rec[f.Key] = TextValue("")
		case KindList:
			rec[f.Key] = ListValue()
		case KindBool:
			rec[f.Key] = BoolValue(false)
		case KindNumber:
			rec[f.Key] = NumberValue(0)
		}
	}
	return rec
}

// Apply returns {...rec, [edit.Field]: edit.Value} as a new record. rec is never modified.
// An unset value clears the field.
func (d *Definition) Apply(rec Record, edit Edit) (Record, error) {
	const op = "Apply"

	if err := d.checkValue(edit.Field, edit.Value); err != nil {
		return nil, newFormError(op, d.ID, edit.Field, err)
	}

	updated := rec.Clone()
	if edit.Value.IsSet() {
		updated[edit.Field] = edit.Value
	} else {
		delete(updated, edit.Field)
	}
	return updated, nil
}

func (d *Definition) checkValue(key string, v Value) error {
	f, ok := d.Field(key)
	if !ok {
		return ErrUnknownField
	}
	if v.IsSet() && v.Kind() != f.Type.ValueKind() {
		return fmt.Errorf("%w: %s field expects %s, got %s", ErrValueKind, f.Type, f.Type.ValueKind(), v.Kind())
	}
	return nil
}

// CheckRecord reports the first key in rec the form does not declare or whose value has the wrong kind.
// Records decoded from JSON should pass through it before they are edited.
func (d *Definition) CheckRecord(rec Record) error {
	const op = "CheckRecord"

	for _, f := range d.Fields {
		if v, ok := rec[f.Key]; ok {
			if err := d.checkValue(f.Key, v); err != nil {
				return newFormError(op, d.ID, f.Key, err)
			}
		}
	}
	for key := range rec {
		if _, ok := d.Field(key); !ok {
			return newFormError(op, d.ID, key, ErrUnknownField)
		}
	}
	return nil
}

// IsValid is the logical AND over the required keys: each value must be truthy, and list values must be non-empty.
func (d *Definition) IsValid(rec Record) bool {
	for _, key := range d.Required {
		if !present(rec[key]) {
			return false
		}
	}
	return true
}

// Missing returns the required keys that fail the presence check, in declaration order.
func (d *Definition) Missing(rec Record) []string {
	var missing []string
	for _, key := range d.Required {
		if !present(rec[key]) {
			missing = append(missing, key)
		}
	}
	return missing
}

func present(v Value) bool {
	var err error
	switch v.Kind() {
	case KindText:
		err = validate.Var(v.AsText(), "required")
	case KindList:
		err = validate.Var(v.AsList(), "required,min=1")
	case KindBool:
		err = validate.Var(v.AsBool(), "required")
	case KindNumber:
		err = validate.Var(v.AsNumber(), "required")
	default:
		return false
	}
	return err == nil
}

// Replay folds edits over start and returns the final record and its validity.
// The same edits from the same start always yield the same result.
func (d *Definition) Replay(start Record, edits []Edit) (Record, bool, error) {
	const op = "Replay"

	rec := start
	if rec == nil {
		rec = d.NewRecord()
	}
	for i, e := range edits {
		next, err := d.Apply(rec, e)
		if err != nil {
			return nil, false, fmt.Errorf("%s: edit %d: %w", op, i+1, err)
		}
		rec = next
	}
	return rec, d.IsValid(rec), nil
}

// ParseValue converts the textual form of a value, as typed on a command line, into the field's kind.
// Checkbox groups take comma separated items.
func (d *Definition) ParseValue(key, raw string) (Value, error) {
	const op = "ParseValue"

	f, ok := d.Field(key)
	if !ok {
		return Value{}, newFormError(op, d.ID, key, ErrUnknownField)
	}

	switch f.Type.ValueKind() {
	case KindList:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return ListValue(items...), nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, newFormError(op, d.ID, key, fmt.Errorf("%w: %q is not a boolean", ErrValueKind, raw))
		}
		return BoolValue(b), nil
	case KindNumber:
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return Value{}, newFormError(op, d.ID, key, fmt.Errorf("%w: %q is not a number", ErrValueKind, raw))
		}
		return NumberValue(n), nil
	}
	return TextValue(raw), nil
}
