package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the closed set of fact value types.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueBool   ValueKind = "bool"
	ValueNumber ValueKind = "number"
	ValueOpaque ValueKind = "opaque"
)

// Value is a tagged variant holding a fact's payload. Using a closed set of
// kinds keeps equality and rendering well-defined instead of leaning on
// implicit string coercion.
type Value struct {
	kind   ValueKind
	str    string
	b      bool
	num    float64
	opaque any
}

func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

func BoolValue(b bool) Value {
	return Value{kind: ValueBool, b: b}
}

func NumberValue(n float64) Value {
	return Value{kind: ValueNumber, num: n}
}

func OpaqueValue(v any) Value {
	return Value{kind: ValueOpaque, opaque: v}
}

// ValueOf converts an untyped payload (decoded JSON or YAML) into a Value.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	default:
		return OpaqueValue(v)
	}
}

func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueString
	}
	return v.kind
}

// String renders the value for prompts, reasons, and comparisons.
func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueOpaque:
		return fmt.Sprint(v.opaque)
	default:
		return v.str
	}
}

// EqualsFold reports whether a claimed string matches the value ignoring case.
func (v Value) EqualsFold(claimed string) bool {
	return strings.EqualFold(v.String(), claimed)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueBool:
		return json.Marshal(v.b)
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueOpaque:
		return json.Marshal(v.opaque)
	default:
		return json.Marshal(v.str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// Fact is a keyed, typed datum about the world with a visibility rule.
// A fact is knowable by a character iff it is public or the character
// is listed as a witness.
type Fact struct {
	Key       string     `json:"key"`
	Value     Value      `json:"value"`
	Category  string     `json:"category"`
	Source    string     `json:"source"`
	Timestamp string     `json:"timestamp,omitempty"`
	Public    bool       `json:"is_public"`
	Witnesses []string   `json:"witnesses,omitempty"`
	EventID   string     `json:"event_id,omitempty"`
	Anchor    *TimeBlock `json:"schedule_anchor,omitempty"`
}

// KnownTo reports whether the character is entitled to know this fact.
func (f *Fact) KnownTo(character string) bool {
	if f.Public {
		return true
	}
	for _, w := range f.Witnesses {
		if w == character {
			return true
		}
	}
	return false
}
