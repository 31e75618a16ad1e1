package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flag is an on/off field. Besides true/false the controller may send a
// number or a string; zero, "" and false read as off, anything else as on.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Flag(truthy(v))
	return nil
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// Reading is a sensor value sent as a JSON number or string. It keeps the
// text to display and, when the text parses, its numeric value.
type Reading struct {
	text    string
	value   float64
	numeric bool
	quoted  bool
}

// Float returns a numeric reading.
func Float(v float64) *Reading {
	return &Reading{text: formatFloat(v), value: v, numeric: true}
}

// Text returns a reading sent as a string.
func Text(s string) *Reading {
	r := &Reading{text: s, quoted: true}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		r.value, r.numeric = v, true
	}
	return r
}

// Bool returns a flag set to v.
func Bool(v bool) *Flag {
	f := Flag(v)
	return &f
}

func (r Reading) String() string { return r.text }

// Float64 reports the numeric value and whether there is one.
func (r Reading) Float64() (float64, bool) { return r.value, r.numeric }

func (r *Reading) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*r = Reading{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = *Text(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		// booleans have no printable form on the page
		*r = Reading{}
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			// objects and arrays are shown as sent
			var buf bytes.Buffer
			if cerr := json.Compact(&buf, b); cerr != nil {
				return cerr
			}
			*r = Reading{text: buf.String()}
			return nil
		}
		*r = *Float(v)
	}
	return nil
}

// MarshalJSON writes numbers back as numbers and everything else as a string.
func (r Reading) MarshalJSON() ([]byte, error) {
	if r.numeric && !r.quoted {
		return []byte(formatFloat(r.value)), nil
	}
	return json.Marshal(r.text)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
