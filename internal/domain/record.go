package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the primitive kind of a raw property value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a raw property value as returned by the CRM API: a string, a
// number, or null. Keeping the kinds explicit gives the translator and
// formatter exhaustive cases instead of an open-ended any.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Null is the null value.
var Null = Value{}

// String creates a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text renders the value as the string form used for lookups and display.
// Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return ""
}

// UnmarshalJSON accepts any JSON value. Strings, numbers, and null keep
// their kind; booleans and anything else (nested objects or arrays from
// exotic custom properties) fold into their raw text as a string, so one
// odd field never aborts decoding a whole record.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Null
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		*v = Number(f)
		return nil
	}
	*v = String(string(trimmed))
	return nil
}

// MarshalJSON renders the value in its original JSON kind.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	}
	return []byte("null"), nil
}

// DisplayField is one translated property: human-readable label and
// formatted display value.
type DisplayField struct {
	Label string
	Value string
}

// DisplayRecord is an ordered sequence of translated properties. It
// marshals to a JSON object whose keys appear in record order, which Go
// maps cannot guarantee.
type DisplayRecord []DisplayField

// Get returns the value for a label.
func (r DisplayRecord) Get(label string) (string, bool) {
	for _, f := range r {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// UnmarshalJSON decodes an object into the record, keeping the fields in
// document order.
func (r *DisplayRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	out := (*r)[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return err
		}
		out = append(out, DisplayField{Label: keyTok.(string), Value: val})
	}
	*r = out
	return nil
}

// MarshalJSON renders the record as an object preserving field order.
func (r DisplayRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
