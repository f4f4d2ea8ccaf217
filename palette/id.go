package palette

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a palette entry identifier, either an integer or a string.
type ID struct {
	n   int
	s   string
	str bool
}

// IntID returns a numeric ID.
func IntID(n int) ID {
	return ID{n: n}
}

// StringID returns a non-numeric ID.
func StringID(s string) ID {
	return ID{s: s, str: true}
}

// Int returns the numeric value of id, if it has one.
func (id ID) Int() (int, bool) {
	return id.n, !id.str
}

func (id ID) String() string {
	if id.str {
		return id.s
	}
	return strconv.Itoa(id.n)
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.str {
		return json.Marshal(id.s)
	}
	return []byte(strconv.Itoa(id.n)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte{'"'}) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = IntID(n)
	return nil
}
