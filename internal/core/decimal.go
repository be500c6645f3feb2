// Package core holds the bill and loan records exchanged with the
// finance API and the parsing/formatting rules around them.
//
// Amounts travel as JSON numbers or as quoted numeric strings depending
// on the API's database driver, so decoding is deliberately tolerant:
// anything that does not parse as a number contributes zero instead of
// failing the whole list.
package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Decimal is a currency value. Full precision is kept in memory;
// two-digit rounding happens only at render time via FormatBRL.
type Decimal float64

// UnmarshalJSON accepts numbers, quoted numbers and null. Non-numeric
// input decodes to zero without error.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*d = 0
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*d = 0
			return nil
		}
		*d = Decimal(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*d = 0
		return nil
	}
	*d = Decimal(v)
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(d))
}

// ParseAmount converts user-typed text to a Decimal. Empty input is
// zero; both comma and dot decimal separators are accepted.
func ParseAmount(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return Decimal(v), nil
}

// FormatBRL renders a value the way the lists do: "R$ 150.50".
func FormatBRL(d Decimal) string {
	return "R$ " + strconv.FormatFloat(float64(d), 'f', 2, 64)
}
