package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// ValueKind discriminates the Value union.
type ValueKind string

const (
	KindUnset  ValueKind = ""
	KindText   ValueKind = "text"
	KindList   ValueKind = "list"
	KindBool   ValueKind = "bool"
	KindNumber ValueKind = "number"
)

// Value is one form field value. The zero Value is unset.
// In JSON it is the natural representation: string, array of strings, boolean, number or null.
type Value struct {
	kind ValueKind
	text string
	list []string
	flag bool
	num  float64
}

func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// ListValue copies items, so later changes to the argument do not leak into a record.
func ListValue(items ...string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

func (v Value) Kind() ValueKind { return v.kind }

// IsSet reports whether the value holds any kind.
func (v Value) IsSet() bool { return v.kind != KindUnset }

func (v Value) AsText() string { return v.text }

func (v Value) AsBool() bool { return v.flag }

func (v Value) AsNumber() float64 { return v.num }

// AsList returns a copy of the list items.
func (v Value) AsList() []string { return slices.Clone(v.list) }

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindList:
		return slices.Equal(v.list, o.list)
	case KindBool:
		return v.flag == o.flag
	case KindNumber:
		return v.num == o.num
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindList:
		return fmt.Sprintf("%v", v.list)
	case KindBool:
		return fmt.Sprintf("%t", v.flag)
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	}
	return "<unset>"
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindBool:
		return json.Marshal(v.flag)
	case KindNumber:
		return json.Marshal(v.num)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	case '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("%w: list values must contain strings", ErrValueKind)
		}
		*v = ListValue(items...)
	case 't', 'f':
		var flag bool
		if err := json.Unmarshal(b, &flag); err != nil {
			return err
		}
		*v = BoolValue(flag)
	default:
		var num float64
		if err := json.Unmarshal(b, &num); err != nil {
			return fmt.Errorf("%w: unsupported JSON value %s", ErrValueKind, string(b))
		}
		*v = NumberValue(num)
	}
	return nil
}

// Record is the flat data record of one intake form, keyed by field key.
type Record map[string]Value

// Clone returns a shallow copy of the record. Values are immutable, so this is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether both records hold the same keys and values.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
