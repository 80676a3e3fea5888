package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/compress"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// decodeDC2 reads a Dark Castle 'DC2 ' sprite: a fixed header naming the
// image's dimensions and bit depth, followed by an opcode-dispatched
// bit-packed pixel stream. The highest palette index is the transparent
// sentinel when the header's generate-mask flag is set.
func decodeDC2(data []byte, _ int16, opts Options) (Artifact, error) {
	r := byteio.NewReader(data)
	hdr, err := compress.ReadDC2Header(r)
	if err != nil {
		return Artifact{}, err
	}
	if hdr.Width <= 0 || hdr.Height <= 0 {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "DC2: non-positive dimensions %dx%d", hdr.Width, hdr.Height)
	}

	br := r.BitReaderFromHere()
	indices, err := compress.DecodeDC2Pixels(br, hdr)
	if err != nil {
		return Artifact{}, err
	}

	palette := opts.Palette
	if palette == nil {
		palette = defaultIndexedPalette(hdr.BitsPerPixel)
	}
	transparentIdx := (1 << uint(hdr.BitsPerPixel)) - 1

	width, height := int(hdr.Width), int(hdr.Height)
	img, err := raster.New(width, height, true)
	if err != nil {
		return Artifact{}, err
	}
	for i, idx := range indices {
		x, y := i%width, i/width
		if hdr.GenerateMask && idx == transparentIdx {
			_ = img.Write(x, y, raster.Transparent)
			continue
		}
		if idx == 0 {
			_ = img.Write(x, y, raster.Opaque(0, 0, 0))
			continue
		}
		c, err := palette.MustGetEntry(idx)
		if err != nil {
			return Artifact{}, err
		}
		_ = img.Write(x, y, raster.Opaque(c.R8(), c.G8(), c.B8()))
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}
