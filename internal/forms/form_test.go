package forms

import (
	"encoding/json"
	"errors"
	"testing"
)

func testDefinition() *Definition {
	return &Definition{
		ID:       "elektriker",
		Name:     "Elektriker",
		Category: "handwerk",
		Required: []string{"leistungsart", "umfang", "dringend"},
		Fields: []Field{
			{Key: "leistungsart", Label: "Art der Leistung", Type: TypeSelect, Options: []string{"Neuinstallation", "Reparatur"}},
			{Key: "umfang", Label: "Betroffene Bereiche", Type: TypeCheckboxGroup, Options: []string{"Beleuchtung", "Herdanschluss"}},
			{Key: "dringend", Label: "Dringend", Type: TypeCheckbox},
			{Key: "flaeche", Label: "Fläche", Type: TypeNumber},
			{Key: "beschreibung", Label: "Beschreibung", Type: TypeTextarea},
		},
	}
}

func TestNewRecordDefaults(t *testing.T) {
	d := testDefinition()
	rec := d.NewRecord()

	if len(rec) != len(d.Fields) {
		t.Fatalf("record has %d keys, want %d", len(rec), len(d.Fields))
	}
	if rec["umfang"].Kind() != KindList || rec["dringend"].Kind() != KindBool || rec["flaeche"].Kind() != KindNumber {
		t.Fatalf("default kinds wrong: %v", rec)
	}
	if d.IsValid(rec) {
		t.Fatal("a fresh record must not be valid")
	}
}

func TestApplyReturnsNewRecord(t *testing.T) {
	d := testDefinition()
	rec := d.NewRecord()

	updated, err := d.Apply(rec, Edit{Field: "leistungsart", Value: TextValue("Reparatur")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec["leistungsart"].AsText() != "" {
		t.Fatal("input record was mutated")
	}
	if updated["leistungsart"].AsText() != "Reparatur" {
		t.Fatalf("updated value = %q", updated["leistungsart"].AsText())
	}

	cleared, err := d.Apply(updated, Edit{Field: "leistungsart"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cleared["leistungsart"]; ok {
		t.Fatal("unset value must clear the field")
	}
}

func TestApplyErrors(t *testing.T) {
	d := testDefinition()
	tests := []struct {
		name string
		edit Edit
		want error
	}{
		{"unknown field", Edit{Field: "farbe", Value: TextValue("rot")}, ErrUnknownField},
		{"text into list", Edit{Field: "umfang", Value: TextValue("Beleuchtung")}, ErrValueKind},
		{"text into checkbox", Edit{Field: "dringend", Value: TextValue("ja")}, ErrValueKind},
		{"list into select", Edit{Field: "leistungsart", Value: ListValue("Reparatur")}, ErrValueKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Apply(d.NewRecord(), tt.edit)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var ferr *FormError
			if !errors.As(err, &ferr) || ferr.Field != tt.edit.Field {
				t.Fatalf("expected FormError for field %s, got %v", tt.edit.Field, err)
			}
		})
	}
}

func TestIsValidTruthiness(t *testing.T) {
	d := testDefinition()
	valid := Record{
		"leistungsart": TextValue("Neuinstallation"),
		"umfang":       ListValue("Beleuchtung"),
		"dringend":     BoolValue(true),
	}
	if !d.IsValid(valid) {
		t.Fatalf("expected valid record, missing %v", d.Missing(valid))
	}

	tests := []struct {
		name  string
		key   string
		value Value
	}{
		{"empty text", "leistungsart", TextValue("")},
		{"empty list", "umfang", ListValue()},
		{"false checkbox", "dringend", BoolValue(false)},
		{"unset", "leistungsart", Value{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid.Clone()
			rec[tt.key] = tt.value
			if d.IsValid(rec) {
				t.Fatal("record must be invalid")
			}
			missing := d.Missing(rec)
			if len(missing) != 1 || missing[0] != tt.key {
				t.Fatalf("missing = %v, want [%s]", missing, tt.key)
			}
		})
	}
}

func TestOptionalFieldsDoNotAffectValidity(t *testing.T) {
	d := testDefinition()
	rec := Record{
		"leistungsart": TextValue("Reparatur"),
		"umfang":       ListValue("Herdanschluss"),
		"dringend":     BoolValue(true),
	}
	before := d.IsValid(rec)
	rec2, err := d.Apply(rec, Edit{Field: "beschreibung", Value: TextValue("")})
	if err != nil {
		t.Fatal(err)
	}
	if d.IsValid(rec2) != before {
		t.Fatal("optional field changed validity")
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	d := testDefinition()
	edits := []Edit{
		{Field: "leistungsart", Value: TextValue("Neuinstallation")},
		{Field: "umfang", Value: ListValue("Beleuchtung", "Herdanschluss")},
		{Field: "flaeche", Value: NumberValue(85)},
		{Field: "dringend", Value: BoolValue(true)},
		{Field: "leistungsart", Value: TextValue("Reparatur")},
	}

	first, firstValid, err := d.Replay(nil, edits)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	second, secondValid, err := d.Replay(nil, edits)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) || firstValid != secondValid {
		t.Fatal("replaying the same edits diverged")
	}
	if !firstValid || first["leistungsart"].AsText() != "Reparatur" {
		t.Fatalf("unexpected final record %v (valid=%v)", first, firstValid)
	}

	_, _, err = d.Replay(nil, append(edits, Edit{Field: "farbe", Value: TextValue("blau")}))
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from replay, got %v", err)
	}
}

func TestCheckRecord(t *testing.T) {
	d := testDefinition()
	if err := d.CheckRecord(d.NewRecord()); err != nil {
		t.Fatalf("default record rejected: %v", err)
	}
	if err := d.CheckRecord(Record{"umfang": TextValue("x")}); !errors.Is(err, ErrValueKind) {
		t.Fatalf("expected ErrValueKind, got %v", err)
	}
	if err := d.CheckRecord(Record{"farbe": TextValue("x")}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestParseValue(t *testing.T) {
	d := testDefinition()
	tests := []struct {
		key  string
		raw  string
		want Value
	}{
		{"leistungsart", "Reparatur", TextValue("Reparatur")},
		{"umfang", "Beleuchtung, Herdanschluss,", ListValue("Beleuchtung", "Herdanschluss")},
		{"dringend", "true", BoolValue(true)},
		{"flaeche", "12,5", NumberValue(12.5)},
	}
	for _, tt := range tests {
		got, err := d.ParseValue(tt.key, tt.raw)
		if err != nil {
			t.Fatalf("ParseValue(%s, %q): %v", tt.key, tt.raw, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseValue(%s, %q) = %v, want %v", tt.key, tt.raw, got, tt.want)
		}
	}

	if _, err := d.ParseValue("dringend", "jein"); !errors.Is(err, ErrValueKind) {
		t.Fatalf("expected ErrValueKind, got %v", err)
	}
	if _, err := d.ParseValue("farbe", "rot"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	for _, raw := range []string{"NaN", "Inf", "-inf", "1e400"} {
		if _, err := d.ParseValue("flaeche", raw); !errors.Is(err, ErrValueKind) {
			t.Errorf("ParseValue(flaeche, %q): expected ErrValueKind, got %v", raw, err)
		}
	}
}

func TestRecordJSON(t *testing.T) {
	raw := `{"leistungsart":"Reparatur","umfang":["Beleuchtung"],"dringend":true,"flaeche":42.5,"beschreibung":null}`
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec["umfang"].Kind() != KindList || rec["flaeche"].AsNumber() != 42.5 || rec["beschreibung"].IsSet() {
		t.Fatalf("decoded record wrong: %v", rec)
	}
	if !testDefinition().IsValid(rec) {
		t.Fatal("decoded record should be valid")
	}

	out, err := json.Marshal(Record{"umfang": ListValue()})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"umfang":[]}` {
		t.Fatalf("empty list marshalled as %s", out)
	}

	if err := json.Unmarshal([]byte(`{"umfang":[1,2]}`), &rec); !errors.Is(err, ErrValueKind) {
		t.Fatalf("expected ErrValueKind for numeric list, got %v", err)
	}
}
