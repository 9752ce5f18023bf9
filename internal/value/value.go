// Package value holds the typed runtime values stored in rows and the coercion rules that
// turn statement literals into them.
package value

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the runtime type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindBoolean
)

var kindNames = map[Kind]string{
	KindNull:    "null",
	KindInteger: "integer",
	KindFloat:   "float",
	KindText:    "text",
	KindBoolean: "boolean",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Value is a typed, coerced runtime value. The zero Value is NULL. Values are comparable, so
// two values are equal exactly when == holds.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

func Null() Value { return Value{} }

func Integer(v int64) Value { return Value{kind: KindInteger, i: v} }

func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

func Text(v string) Value { return Value{kind: KindText, s: v} }

func Boolean(v bool) Value { return Value{kind: KindBoolean, b: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer held by v, and false when v is not an integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInteger }

func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBoolean }

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	default:
		return "NULL"
	}
}

// encodedValue is the storage form of a Value: {"kind":"integer","value":1}
type encodedValue struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON satisfies json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch v.kind {
	case KindNull:
		return json.Marshal(encodedValue{Kind: v.kind.String()})
	case KindInteger:
		payload = v.i
	case KindFloat:
		payload = v.f
	case KindText:
		payload = v.s
	case KindBoolean:
		payload = v.b
	default:
		return nil, fmt.Errorf("cannot encode value of kind %d", int(v.kind))
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(encodedValue{Kind: v.kind.String(), Value: raw})
}

// UnmarshalJSON satisfies json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var enc encodedValue
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}

	var err error
	switch enc.Kind {
	case "null":
		*v = Null()
	case "integer":
		var i int64
		err = json.Unmarshal(enc.Value, &i)
		*v = Integer(i)
	case "float":
		var f float64
		err = json.Unmarshal(enc.Value, &f)
		*v = Float(f)
	case "text":
		var s string
		err = json.Unmarshal(enc.Value, &s)
		*v = Text(s)
	case "boolean":
		var b bool
		err = json.Unmarshal(enc.Value, &b)
		*v = Boolean(b)
	default:
		return fmt.Errorf("unknown value kind: %q", enc.Kind)
	}
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", enc.Kind, err)
	}
	return nil
}
