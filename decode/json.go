package decode

import (
	"encoding/json"

	"github.com/retrodasm/resourcedasm/colortable"
)

// marshalStyleRuns renders a 'styl' resource's formatting runs as JSON.
// Marshal failure here would mean a bug in this package, not bad input,
// so it's swallowed into an empty array rather than surfaced as a decode
// error.
func marshalStyleRuns(runs []StyleRun) []byte {
	b, err := json.Marshal(runs)
	if err != nil {
		return []byte("[]")
	}
	return b
}

type jsonColorEntry struct {
	ID int    `json:"id"`
	R  uint16 `json:"r"`
	G  uint16 `json:"g"`
	B  uint16 `json:"b"`
}

// marshalColorTable renders a decoded ColorTable/PLTT as a JSON array of
// {id, r, g, b} entries.
func marshalColorTable(ct *colortable.ColorTable) []byte {
	entries := make([]jsonColorEntry, 0, ct.Len())
	ct.Each(func(id int, c colortable.Color) {
		entries = append(entries, jsonColorEntry{ID: id, R: c.R, G: c.G, B: c.B})
	})
	b, err := json.Marshal(entries)
	if err != nil {
		return []byte("[]")
	}
	return b
}
