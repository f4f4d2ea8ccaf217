package palette

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonEntry struct {
	ID      ID     `json:"id"`
	Premium bool   `json:"premium"`
	Name    string `json:"name"`
	RGB     []int  `json:"rgb"`
}

func (j jsonEntry) entry() (Entry, bool) {
	if len(j.RGB) != 3 {
		return Entry{}, false
	}
	for _, v := range j.RGB {
		if v < 0 || v > 0xff {
			return Entry{}, false
		}
	}
	return Entry{
		ID:      j.ID,
		Premium: j.Premium,
		Name:    j.Name,
		RGB:     Color{uint8(j.RGB[0]), uint8(j.RGB[1]), uint8(j.RGB[2])},
	}, true
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonEntry{
		ID:      e.ID,
		Premium: e.Premium,
		Name:    e.Name,
		RGB:     []int{int(e.RGB.R), int(e.RGB.G), int(e.RGB.B)},
	})
}

// Load reads a JSON array of palette entries from r. Entries without a
// three component 0-255 rgb value are skipped.
func Load(r io.Reader) ([]Entry, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, m := range raw {
		var j jsonEntry
		if err := json.Unmarshal(m, &j); err != nil {
			continue
		}
		if e, ok := j.entry(); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
