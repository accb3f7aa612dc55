package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Data is the success value of a request. For enveloped responses Raw holds
// the JSON text of the "data" field; otherwise it holds the whole body.
type Data struct {
	Raw       []byte
	Enveloped bool
}

// IsFalsy reports whether the value would not count as a result: a missing or
// null field, false, zero, or an empty string. A plain body is falsy only when
// it is empty.
func (d Data) IsFalsy() bool {
	if !d.Enveloped {
		return len(d.Raw) == 0
	}
	v := bytes.TrimSpace(d.Raw)
	switch string(v) {
	case "", "null", "false", `""`:
		return true
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f == 0
	}
	return false
}

// Decode unmarshals the JSON value into v. A plain body is decoded as JSON too,
// so a raw "[]" decodes into an empty slice.
func (d Data) Decode(v any) error {
	if len(bytes.TrimSpace(d.Raw)) == 0 {
		return fmt.Errorf("decode: empty data")
	}
	return json.Unmarshal(d.Raw, v)
}

// Text renders the value for display: enveloped JSON strings are unquoted,
// any other enveloped value is shown as JSON, and a plain body as is.
func (d Data) Text() string {
	if d.Enveloped {
		var s string
		if err := json.Unmarshal(d.Raw, &s); err == nil {
			return s
		}
	}
	return string(d.Raw)
}

// Bool interprets the value as a boolean. JSON true/false is accepted in both
// shapes; a plain body may also use the strconv.ParseBool spellings.
func (d Data) Bool() (bool, error) {
	var b bool
	if err := json.Unmarshal(bytes.TrimSpace(d.Raw), &b); err == nil {
		return b, nil
	}
	if !d.Enveloped {
		if b, err := strconv.ParseBool(string(bytes.TrimSpace(d.Raw))); err == nil {
			return b, nil
		}
	}
	return false, fmt.Errorf("not a boolean: %q", d.Raw)
}
