package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/colortable"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// readColorTable reads a QuickDraw ColorTable: {seed: u32, flags: u16,
// num_entries_minus_1: i16, entries: (id: i16, r/g/b: u16)[]}. Used both
// for standalone 'clut' resources and the ColorTable embedded inline in a
// 'cicn' resource.
func readColorTable(r *byteio.Reader) (*colortable.ColorTable, error) {
	if _, err := r.GetU32BE(); err != nil { // seed
		return nil, err
	}
	flags, err := r.GetU16BE()
	if err != nil {
		return nil, err
	}
	numMinus1, err := r.GetI16BE()
	if err != nil {
		return nil, err
	}
	n := int(numMinus1) + 1
	if n < 0 {
		return nil, rderr.New(rderr.KindCorruptSize, "color table: negative entry count")
	}

	ids := make([]int, n)
	colors := make([]colortable.Color, n)
	for i := 0; i < n; i++ {
		id, err := r.GetI16BE()
		if err != nil {
			return nil, err
		}
		red, err := r.GetU16BE()
		if err != nil {
			return nil, err
		}
		green, err := r.GetU16BE()
		if err != nil {
			return nil, err
		}
		blue, err := r.GetU16BE()
		if err != nil {
			return nil, err
		}
		ids[i] = int(id)
		colors[i] = colortable.Color{R: red, G: green, B: blue}
	}

	return colortable.FromEntries(flags, ids, colors)
}

// decodeCLUT reads a standalone 'clut' resource.
func decodeCLUT(data []byte, _ int16, _ Options) (Artifact, error) {
	ct, err := readColorTable(byteio.NewReader(data))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindJSON, Palette: ct, JSON: marshalColorTable(ct)}, nil
}

// decodePLTT reads a 'pltt' Palette Manager resource: {num_entries_minus_1:
// i16, entries: (r/g/b: u16, usage: u16, tolerance: u16, private_flags: u16,
// unused: u32)[]}. Entry ids are implicit (the array position), matching
// every other count-prefixed list this corpus decodes.
func decodePLTT(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	numMinus1, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	n := int(numMinus1) + 1
	if n < 0 {
		return Artifact{}, rderr.New(rderr.KindCorruptSize, "pltt: negative entry count")
	}

	ids := make([]int, n)
	colors := make([]colortable.Color, n)
	for i := 0; i < n; i++ {
		red, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		green, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		blue, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		if _, err := r.GetBytes(8); err != nil { // usage, tolerance, private_flags, unused
			return Artifact{}, err
		}
		ids[i] = i
		colors[i] = colortable.Color{R: red, G: green, B: blue}
	}

	ct, err := colortable.FromEntries(0, ids, colors)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindJSON, Palette: ct, JSON: marshalColorTable(ct)}, nil
}

// decodeMonoPattern renders an 8-byte, 1-bit-per-pixel QuickDraw Pattern
// (bit set = black) into an 8x8 image, the shape 'PAT ' and the
// monochrome fallback of 'ppat' both use.
func decodeMonoPattern(pattern [8]byte) (*raster.Image, error) {
	img, err := raster.New(8, 8, false)
	if err != nil {
		return nil, err
	}
	for y := 0; y < 8; y++ {
		row := pattern[y]
		for x := 0; x < 8; x++ {
			bit := (row >> uint(7-x)) & 1
			if bit != 0 {
				_ = img.Write(x, y, raster.Opaque(0, 0, 0))
			} else {
				_ = img.Write(x, y, raster.Opaque(0xFF, 0xFF, 0xFF))
			}
		}
	}
	return img, nil
}

// decodePAT reads a single 8-byte 'PAT ' pattern resource.
func decodePAT(data []byte, _ int16, _ Options) (Artifact, error) {
	if len(data) < 8 {
		return Artifact{}, rderr.New(rderr.KindUnexpectedEOF, "PAT: resource shorter than 8 bytes")
	}
	var pattern [8]byte
	copy(pattern[:], data[:8])
	img, err := decodeMonoPattern(pattern)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decodePATSharp reads a 'PAT#' resource: {count: i16, patterns: 8-byte
// Pattern[count]}.
func decodePATSharp(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	count, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	images := make([]*raster.Image, 0, count)
	for i := int16(0); i < count; i++ {
		raw, err := r.GetBytes(8)
		if err != nil {
			return Artifact{}, err
		}
		var pattern [8]byte
		copy(pattern[:], raw)
		img, err := decodeMonoPattern(pattern)
		if err != nil {
			return Artifact{}, err
		}
		images = append(images, img)
	}
	return Artifact{Kind: KindImages, Images: images}, nil
}

// decodePpat reads a 'ppat' QuickDraw pixel pattern resource: {type: i16,
// pixmap_offset: u32, pixel_data_offset: u32, unused1: u32, unused2: u16,
// reserved: u32, monochrome_pattern: 8 bytes}. type 0 is the monochrome
// fallback pattern; type 1 carries a full PixelMapHeader plus pixel data
// at the two declared offsets, needing a palette either inline (via the
// header's color table reference, unavailable without the handle table
// this package doesn't model) or supplied by the caller.
func decodePpat(data []byte, _ int16, opts Options) (Artifact, error) {
	r := byteio.NewReader(data)
	patType, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	pixMapOffset, err := r.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}
	pixDataOffset, err := r.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetBytes(10); err != nil { // unused1, unused2, reserved
		return Artifact{}, err
	}
	monoBytes, err := r.GetBytes(8)
	if err != nil {
		return Artifact{}, err
	}

	if patType == 0 || pixMapOffset == 0 {
		var pattern [8]byte
		copy(pattern[:], monoBytes)
		img, err := decodeMonoPattern(pattern)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Kind: KindImage, Image: img}, nil
	}

	if opts.Palette == nil {
		return Artifact{}, rderr.New(rderr.KindMissingResource, "ppat: color pattern needs a palette (pass Options.Palette)")
	}
	pmReader, err := byteio.NewReader(data).Sub(int(pixMapOffset), len(data)-int(pixMapOffset))
	if err != nil {
		return Artifact{}, err
	}
	img, err := decodePixMapAt(pmReader, data, int(pixDataOffset), opts.Palette)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}
