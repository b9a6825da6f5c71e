package bnum

import (
	"bytes"
	"encoding/json"
)

// NullNum is a Num that may be undefined, in the manner of decimal.NullDecimal.
type NullNum struct {
	Num   Num
	Valid bool
}

func NewNullNum(n Num) NullNum {
	return NullNum{Num: n, Valid: true}
}

func (n NullNum) String() string {
	if !n.Valid {
		return "undefined"
	}
	return n.Num.String()
}

func (n NullNum) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Num.MarshalJSON()
}

func (n *NullNum) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = NullNum{}
		return nil
	}
	if err := n.Num.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON encodes as a quoted decimal string; NaN as "NaN".
func (n Num) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON accepts a quoted decimal, a bare JSON number or "NaN".
func (n *Num) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	if s == "NaN" {
		*n = NaN
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
