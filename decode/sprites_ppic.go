package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/compress"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// decodePPicResource reads a 'PPic' 4x4-block-compressed sprite:
// {width, height: i16 BE} followed by the nibble-opcode block stream,
// resolved against a 16-color palette.
func decodePPicResource(data []byte, _ int16, opts Options) (Artifact, error) {
	r := byteio.NewReader(data)
	width, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	height, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	if width <= 0 || height <= 0 {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "PPic: non-positive dimensions %dx%d", width, height)
	}

	br := r.BitReaderFromHere()
	indices, err := compress.DecodePPicBlock4x4(br, int(width), int(height))
	if err != nil {
		return Artifact{}, err
	}

	palette := opts.Palette
	if palette == nil {
		palette = defaultIndexedPalette(4)
	}

	img, err := raster.New(int(width), int(height), false)
	if err != nil {
		return Artifact{}, err
	}
	for i, idx := range indices {
		x, y := i%int(width), i/int(width)
		c, err := palette.MustGetEntry(idx)
		if err != nil {
			return Artifact{}, err
		}
		_ = img.Write(x, y, raster.Opaque(c.R8(), c.G8(), c.B8()))
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}
