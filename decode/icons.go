package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/colortable"
	"github.com/retrodasm/resourcedasm/quickdraw"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// decodeMonoIconPlane renders a side*side 1-bit-per-pixel plane (bit set =
// black, MSB-first, rows padded to a byte boundary) into an image, applying
// an optional 1-bit mask plane of the same dimensions (bit set = opaque).
// A nil mask renders every bit opaque.
func decodeMonoIconPlane(bits, mask []byte, side int) (*raster.Image, error) {
	img, err := raster.New(side, side, true)
	if err != nil {
		return nil, err
	}
	rowBytes := (side + 7) / 8
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			byteIdx := y*rowBytes + x/8
			bit := (bits[byteIdx] >> uint(7-x%8)) & 1
			opaque := true
			if mask != nil {
				opaque = (mask[byteIdx]>>uint(7-x%8))&1 != 0
			}
			var c raster.RGBA
			switch {
			case !opaque:
				c = raster.Transparent
			case bit != 0:
				c = raster.Opaque(0, 0, 0)
			default:
				c = raster.Opaque(0xFF, 0xFF, 0xFF)
			}
			_ = img.Write(x, y, c)
		}
	}
	return img, nil
}

func decodeICONResource(data []byte, side int, hasMask bool) (*raster.Image, error) {
	rowBytes := (side + 7) / 8
	planeSize := rowBytes * side
	need := planeSize
	if hasMask {
		need *= 2
	}
	if len(data) < need {
		return nil, rderr.Newf(rderr.KindUnexpectedEOF, "icon resource needs %d bytes, has %d", need, len(data))
	}
	bits := data[:planeSize]
	var mask []byte
	if hasMask {
		mask = data[planeSize : planeSize*2]
	}
	return decodeMonoIconPlane(bits, mask, side)
}

// decodeICON reads an 'ICON' resource: a bare 32x32 1-bit bitmap, no mask.
func decodeICON(data []byte, _ int16, _ Options) (Artifact, error) {
	img, err := decodeICONResource(data, 32, false)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decodeICNSharp reads an 'ICN#' resource: a 32x32 1-bit icon followed by
// its 32x32 1-bit mask.
func decodeICNSharp(data []byte, _ int16, _ Options) (Artifact, error) {
	img, err := decodeICONResource(data, 32, true)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decodeICSSharp reads an 'ics#' resource: the 16x16 small-icon analogue
// of ICN#.
func decodeICSSharp(data []byte, _ int16, _ Options) (Artifact, error) {
	img, err := decodeICONResource(data, 16, true)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decodeSICN reads an 'SICN' resource: a packed list of 16x16 1-bit icons,
// 32 bytes each, with no mask and no count prefix (the resource's total
// size determines how many are present).
func decodeSICN(data []byte, _ int16, _ Options) (Artifact, error) {
	const frameSize = 32
	if len(data)%frameSize != 0 || len(data) == 0 {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "SICN data length %d is not a multiple of %d", len(data), frameSize)
	}
	count := len(data) / frameSize
	images := make([]*raster.Image, count)
	for i := 0; i < count; i++ {
		img, err := decodeMonoIconPlane(data[i*frameSize:(i+1)*frameSize], nil, 16)
		if err != nil {
			return Artifact{}, err
		}
		images[i] = img
	}
	return Artifact{Kind: KindImages, Images: images}, nil
}

// defaultIndexedPalette builds a generated grayscale-ramp approximation of
// a device color table, used only when the caller hasn't supplied the
// real system 'clut'/'PLTT' palette via Options.Palette: classic icl4 and
// icl8 resources store indices into the active device palette, not an
// embedded ColorTable, so a caller who wants exact Mac OS colors must pass
// the real system palette.
func defaultIndexedPalette(bits int) *colortable.ColorTable {
	n := 1 << uint(bits)
	ids := make([]int, n)
	colors := make([]colortable.Color, n)
	for i := 0; i < n; i++ {
		gray := uint16(0xFFFF - (uint32(i)*0xFFFF/uint32(n-1))&0xFFFF)
		ids[i] = i
		colors[i] = colortable.Color{R: gray, G: gray, B: gray}
	}
	ct, _ := colortable.FromEntries(0, ids, colors)
	return ct
}

func decodeIndexedIcon(data []byte, side, bitsPerPixel int, opts Options) (Artifact, error) {
	pixelsPerByte := 8 / bitsPerPixel
	rowBytes := (side + pixelsPerByte - 1) / pixelsPerByte
	planeSize := rowBytes * side
	if len(data) < planeSize {
		return Artifact{}, rderr.Newf(rderr.KindUnexpectedEOF, "indexed icon needs %d bytes, has %d", planeSize, len(data))
	}
	palette := opts.Palette
	if palette == nil {
		palette = defaultIndexedPalette(bitsPerPixel)
	}
	img, err := raster.New(side, side, false)
	if err != nil {
		return Artifact{}, err
	}
	for y := 0; y < side; y++ {
		row := data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < side; x++ {
			idx := readIndex(row, x, bitsPerPixel, pixelsPerByte)
			c, err := palette.MustGetEntry(idx)
			if err != nil {
				return Artifact{}, err
			}
			_ = img.Write(x, y, raster.Opaque(c.R8(), c.G8(), c.B8()))
		}
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

func decodeIcl4(data []byte, _ int16, opts Options) (Artifact, error) { return decodeIndexedIcon(data, 32, 4, opts) }
func decodeIcl8(data []byte, _ int16, opts Options) (Artifact, error) { return decodeIndexedIcon(data, 32, 8, opts) }
func decodeIcs4(data []byte, _ int16, opts Options) (Artifact, error) { return decodeIndexedIcon(data, 16, 4, opts) }
func decodeIcs8(data []byte, _ int16, opts Options) (Artifact, error) { return decodeIndexedIcon(data, 16, 8, opts) }

// decodeCicn reads a 'cicn' color icon: a PixelMapHeader, a BitMapHeader
// for the 1-bit mask, a BitMapHeader for the 1-bit icon, then (in order)
// the mask raster, the 1-bit icon raster, an inline ColorTable, and
// finally the PackBits-compressed indexed pixel data the PixelMapHeader
// describes.
func decodeCicn(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	if _, err := r.GetU32BE(); err != nil { // pix_map_unused
		return Artifact{}, err
	}
	pm, err := quickdraw.ReadPixelMapHeader(r)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetU32BE(); err != nil { // mask_unused
		return Artifact{}, err
	}
	maskHdr, _, err := quickdraw.ReadBitMapHeader(r)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetU32BE(); err != nil { // bitmap_unused
		return Artifact{}, err
	}
	bitmapHdr, _, err := quickdraw.ReadBitMapHeader(r)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetU32BE(); err != nil { // icon_data, ignored
		return Artifact{}, err
	}

	maskData, err := r.GetBytes(maskHdr.RasterSize())
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetBytes(bitmapHdr.RasterSize()); err != nil { // 1-bit icon raster, superseded by the color pixels
		return Artifact{}, err
	}
	ct, err := readColorTable(r)
	if err != nil {
		return Artifact{}, err
	}

	width, height := pm.Bounds.Width(), pm.Bounds.Height()
	if width <= 0 || height <= 0 {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "cicn has non-positive bounds %dx%d", width, height)
	}
	pixelsPerByte := 8 / int(pm.PixelSize)
	img, err := raster.New(width, height, true)
	if err != nil {
		return Artifact{}, err
	}
	maskRowBytes := maskHdr.RowBytes
	for y := 0; y < height; y++ {
		row, err := quickdraw.ReadPackBitsRow(r, pm.RowBytes)
		if err != nil {
			return Artifact{}, err
		}
		for x := 0; x < width; x++ {
			opaque := true
			if maskRowBytes > 0 {
				byteIdx := y*maskRowBytes + x/8
				if byteIdx < len(maskData) {
					opaque = (maskData[byteIdx]>>uint(7-x%8))&1 != 0
				}
			}
			if !opaque {
				_ = img.Write(x, y, raster.Transparent)
				continue
			}
			idx := readIndex(row, x, int(pm.PixelSize), pixelsPerByte)
			c, err := ct.MustGetEntry(idx)
			if err != nil {
				return Artifact{}, err
			}
			_ = img.Write(x, y, raster.Opaque(c.R8(), c.G8(), c.B8()))
		}
	}
	return Artifact{Kind: KindImage, Image: img, Palette: ct}, nil
}

// decodeMonoCursor renders the fixed-size 16x16 monochrome bitmap+mask
// pair that both 'CURS' and the monochrome form of 'crsr' share.
func decodeMonoCursor(bits, mask []byte) (*raster.Image, error) {
	return decodeMonoIconPlane(bits, mask, 16)
}

// decodeCURS reads a classic 'CURS' cursor: 32 bytes bitmap, 32 bytes
// mask, then a hotspot point (ignored for rendering purposes).
func decodeCurs(data []byte, _ int16, _ Options) (Artifact, error) {
	if len(data) < 68 {
		return Artifact{}, rderr.New(rderr.KindUnexpectedEOF, "CURS resource shorter than 68 bytes")
	}
	img, err := decodeMonoCursor(data[:32], data[32:64])
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decodeCrsr reads a 'crsr' color cursor: type tag, offsets to an embedded
// PixelMapHeader and its pixel data, a 32-byte monochrome bitmap and mask
// fallback, a hotspot, and an offset to an inline ColorTable. Color data
// (type 0x8001) is decoded when present; type 0x8000 falls back to the
// monochrome bitmap/mask pair.
func decodeCrsr(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	typ, err := r.GetU16BE()
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
	if _, err := r.GetBytes(10); err != nil { // expanded_data, expanded_depth, unused
		return Artifact{}, err
	}
	bitmap, err := r.GetBytes(0x20)
	if err != nil {
		return Artifact{}, err
	}
	mask, err := r.GetBytes(0x20)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetBytes(4); err != nil { // hotspot y, x
		return Artifact{}, err
	}
	colorTableOffset, err := r.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}

	if typ != 0x8001 || pixMapOffset == 0 || colorTableOffset == 0 {
		img, err := decodeMonoCursor(bitmap, mask)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Kind: KindImage, Image: img}, nil
	}

	ctReader, err := byteio.NewReader(data).Sub(int(colorTableOffset), len(data)-int(colorTableOffset))
	if err != nil {
		return Artifact{}, err
	}
	ct, err := readColorTable(ctReader)
	if err != nil {
		return Artifact{}, err
	}
	pmReader, err := byteio.NewReader(data).Sub(int(pixMapOffset), len(data)-int(pixMapOffset))
	if err != nil {
		return Artifact{}, err
	}
	img, err := decodePixMapAt(pmReader, data, int(pixDataOffset), ct)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img, Palette: ct}, nil
}
