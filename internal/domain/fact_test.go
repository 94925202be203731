package domain

import (
	"encoding/json"
	"testing"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind ValueKind
		str  string
	}{
		{"string", "Poison", ValueString, "Poison"},
		{"bool", true, ValueBool, "true"},
		{"int", 3, ValueNumber, "3"},
		{"float", 2.5, ValueNumber, "2.5"},
		{"opaque", []string{"a"}, ValueOpaque, "[a]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(tt.in)
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
			if v.String() != tt.str {
				t.Errorf("String() = %q, want %q", v.String(), tt.str)
			}
		})
	}
}

func TestValueEqualsFold(t *testing.T) {
	if !StringValue("Poison").EqualsFold("poison") {
		t.Error("comparison should ignore case")
	}
	if StringValue("Poison").EqualsFold("wine") {
		t.Error("different values should not match")
	}
	if !NumberValue(9).EqualsFold("9") {
		t.Error("number should match its rendering")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Value{
		"s": StringValue("Gallery"),
		"b": BoolValue(false),
		"n": NumberValue(10),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]Value
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["s"].String() != "Gallery" || out["s"].Kind() != ValueString {
		t.Errorf("string round trip got %v (%v)", out["s"].String(), out["s"].Kind())
	}
	if out["b"].String() != "false" || out["b"].Kind() != ValueBool {
		t.Errorf("bool round trip got %v (%v)", out["b"].String(), out["b"].Kind())
	}
	if out["n"].String() != "10" || out["n"].Kind() != ValueNumber {
		t.Errorf("number round trip got %v (%v)", out["n"].String(), out["n"].Kind())
	}
}

func TestFactKnownTo(t *testing.T) {
	private := Fact{
		Key:       "cause_of_death",
		Value:     StringValue("Poison"),
		Public:    false,
		Witnesses: []string{"Nathan Cross"},
	}

	if !private.KnownTo("Nathan Cross") {
		t.Error("witness should know a private fact")
	}
	if private.KnownTo("Helena Morven") {
		t.Error("non-witness should not know a private fact")
	}

	public := Fact{Key: "victim", Value: StringValue("Elias Morven"), Public: true}
	if !public.KnownTo("Helena Morven") {
		t.Error("everyone should know a public fact")
	}
}
