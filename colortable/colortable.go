// Package colortable implements the indexed-palette primitives used by
// nearly every Macintosh resource decoder: Color is a 16-bit-per-channel
// RGB triple, and ColorTable maps explicit (not necessarily contiguous)
// ids to those colors.
package colortable

import "github.com/retrodasm/resourcedasm/rderr"

// Color is a 16-bit-per-channel RGB triple, the QuickDraw on-disk
// representation. Narrowing to 8 bits per channel uses the high byte.
type Color struct {
	R, G, B uint16
}

// R8 returns the high byte of the red channel.
func (c Color) R8() uint8 { return uint8(c.R >> 8) }

// G8 returns the high byte of the green channel.
func (c Color) G8() uint8 { return uint8(c.G >> 8) }

// B8 returns the high byte of the blue channel.
func (c Color) B8() uint8 { return uint8(c.B >> 8) }

// FromRGB555 expands a 5-bit-per-channel value (Dark Castle's on-disk
// palette format) to full 16-bit-per-channel precision by replicating the
// top bits into the low bits.
func FromRGB555(v uint16) Color {
	r5 := (v >> 10) & 0x1F
	g5 := (v >> 5) & 0x1F
	b5 := v & 0x1F
	expand := func(v5 uint16) uint16 {
		v8 := uint16(v5<<3 | v5>>2)
		return v8<<8 | v8
	}
	return Color{R: expand(r5), G: expand(g5), B: expand(b5)}
}

// entry is one (id, Color) pair. IDs are explicit and need not be
// contiguous or equal to their array index.
type entry struct {
	ID    int
	Color Color
}

// ColorTable is an ordered, immutable sequence of id-addressed colors.
// Flags bit 0x8000 marks the table as a device-indexed palette; lookups
// remain by id regardless.
type ColorTable struct {
	Flags   uint16
	entries []entry
}

// FromEntries builds a ColorTable from id-addressed colors. Lookups are
// linear; tables are small by construction (fewer than 256 entries in
// every format this package supports).
func FromEntries(flags uint16, ids []int, colors []Color) (*ColorTable, error) {
	if len(ids) != len(colors) {
		return nil, rderr.Newf(rderr.KindCorruptSize,
			"color table id/color count mismatch: %d ids, %d colors", len(ids), len(colors))
	}
	ct := &ColorTable{Flags: flags, entries: make([]entry, len(ids))}
	for i := range ids {
		ct.entries[i] = entry{ID: ids[i], Color: colors[i]}
	}
	return ct, nil
}

// IsDeviceIndexed reports whether flags bit 0x8000 marks this as a
// device-indexed palette rather than an explicit CLUT.
func (ct *ColorTable) IsDeviceIndexed() bool {
	return ct.Flags&0x8000 != 0
}

// Len returns the number of entries, an empty table being legal.
func (ct *ColorTable) Len() int { return len(ct.entries) }

// GetEntry looks up a color by its explicit id, not by array position.
func (ct *ColorTable) GetEntry(id int) (Color, bool) {
	for _, e := range ct.entries {
		if e.ID == id {
			return e.Color, true
		}
	}
	return Color{}, false
}

// SizeBytes returns the on-disk size of the color table this was decoded
// from: an 8-byte header followed by 8 bytes per entry.
func (ct *ColorTable) SizeBytes() int {
	return 8 + 8*len(ct.entries)
}

// Each calls fn once per entry in storage order, id then color.
func (ct *ColorTable) Each(fn func(id int, c Color)) {
	for _, e := range ct.entries {
		fn(e.ID, e.Color)
	}
}

// MustGetEntry looks up a color by id, returning a typed error when a
// decoder that requires a palette is given one lacking the requested
// entry.
func (ct *ColorTable) MustGetEntry(id int) (Color, error) {
	c, ok := ct.GetEntry(id)
	if !ok {
		return Color{}, rderr.Newf(rderr.KindMissingResource, "color table has no entry for id %d", id)
	}
	return c, nil
}
