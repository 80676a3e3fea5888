package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/compress"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// decodePPSSResource reads a Flashback/Presage 'PPSS' opcode-stream
// sprite: {version: i16 BE (0 = Flashback v1, else Presage v2), width,
// height: i16 BE} followed by the opcode stream, resolved against a
// 256-color palette. Opcode-emitted -1 (skip/transparent) entries render
// as transparent pixels regardless of palette.
func decodePPSSResource(data []byte, _ int16, opts Options) (Artifact, error) {
	r := byteio.NewReader(data)
	versionTag, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	width, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	height, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	if width <= 0 || height <= 0 {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "PPSS: non-positive dimensions %dx%d", width, height)
	}

	version := compress.PPSSVersion1
	if versionTag != 0 {
		version = compress.PPSSVersion2
	}

	rest, err := r.GetBytes(r.Remaining())
	if err != nil {
		return Artifact{}, err
	}
	indices, err := compress.DecodePPSS(rest, version, int(width), int(height))
	if err != nil {
		return Artifact{}, err
	}
	if len(indices) < int(width)*int(height) {
		return Artifact{}, rderr.New(rderr.KindCorruptSize, "PPSS: opcode stream produced fewer pixels than width*height")
	}

	palette := opts.Palette
	if palette == nil {
		palette = defaultIndexedPalette(8)
	}

	img, err := raster.New(int(width), int(height), true)
	if err != nil {
		return Artifact{}, err
	}
	for i := 0; i < int(width)*int(height); i++ {
		x, y := i%int(width), i/int(width)
		idx := indices[i]
		if idx < 0 {
			_ = img.Write(x, y, raster.Transparent)
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
