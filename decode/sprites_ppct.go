package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/compress"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// ppctHasMask reports whether a PPCT frame type stacks a mask band below
// the image band: types 0, 3, and 9 do, the rest don't.
func ppctHasMask(frameType int16) bool {
	return frameType == 0 || frameType == 3 || frameType == 9
}

// unpackMonoRows slices a tightly row-packed 1-bit bitstream (rowBytes
// per row) into a raster.Image, compositing an equal-size mask band
// (stacked directly below the image rows) into alpha when present.
func unpackMonoRows(bits []byte, width, height, rowBytes int, maskBits []byte) (*raster.Image, error) {
	img, err := raster.New(width, height, true)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		row := bits[y*rowBytes : (y+1)*rowBytes]
		var maskRow []byte
		if maskBits != nil {
			maskRow = maskBits[y*rowBytes : (y+1)*rowBytes]
		}
		for x := 0; x < width; x++ {
			bit := (row[x/8] >> uint(7-x%8)) & 1
			opaque := true
			if maskRow != nil {
				opaque = (maskRow[x/8]>>uint(7-x%8))&1 != 0
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

// decodePPCTResource reads a 'PPCT' composite-frame sprite: {type,
// num_images, width_words, image_height: i16 BE each} and three further
// header words, followed by a bit-packed stream (PPCT mono below type 1000, PSCR v2 at or above it)
// holding num_images frames of image_height rows each, doubled when the
// frame type stacks a mask band beneath the image.
func decodePPCTResource(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	frameType, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	numImages, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	widthWords, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	imageHeight, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	// Three more header words (decompressed-size hints the original
	// derives from num_images * this field) precede the opcode stream;
	// this package doesn't need their values but must skip past them.
	if err := r.Skip(6); err != nil {
		return Artifact{}, err
	}
	if numImages <= 0 || widthWords <= 0 || imageHeight <= 0 {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "PPCT: non-positive dimensions (%d images, %d words wide, %d tall)", numImages, widthWords, imageHeight)
	}

	width := int(widthWords) * 16
	rowBytes := int(widthWords) * 2
	hasMask := ppctHasMask(frameType)
	bandsPerImage := 1
	if hasMask {
		bandsPerImage = 2
	}
	totalRows := int(numImages) * int(imageHeight) * bandsPerImage

	rest, err := r.GetBytes(r.Remaining())
	if err != nil {
		return Artifact{}, err
	}

	var bits []byte
	if frameType >= 1000 {
		bits, err = compress.DecodePSCRv2(rest)
	} else {
		bits, err = compress.DecodePPCTMono(rest, rowBytes*totalRows*8)
	}
	if err != nil {
		return Artifact{}, err
	}
	if len(bits) < rowBytes*totalRows {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "PPCT: decompressed %d bytes, need %d", len(bits), rowBytes*totalRows)
	}

	images := make([]*raster.Image, numImages)
	rowsPerImage := int(imageHeight) * bandsPerImage
	for i := 0; i < int(numImages); i++ {
		base := i * rowsPerImage * rowBytes
		imageBits := bits[base : base+int(imageHeight)*rowBytes]
		var maskBits []byte
		if hasMask {
			maskStart := base + int(imageHeight)*rowBytes
			maskBits = bits[maskStart : maskStart+int(imageHeight)*rowBytes]
		}
		img, err := unpackMonoRows(imageBits, width, int(imageHeight), rowBytes, maskBits)
		if err != nil {
			return Artifact{}, err
		}
		images[i] = img
	}

	if numImages == 1 {
		return Artifact{Kind: KindImage, Image: images[0]}, nil
	}
	return Artifact{Kind: KindImages, Images: images}, nil
}

// decodePSCRResource reads a standalone 'PSCR' monochrome screen image:
// {version: i16 BE (1 or 2), width, height: i16 BE} followed by the
// matching PSCR command stream. The resource-level header isn't given in
// this package's grounding sources beyond the codec algorithm itself, so
// the field order mirrors the DC2/PPCT headers this corpus already uses
// (version selector, then dimensions, then stream).
func decodePSCRResource(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	version, err := r.GetI16BE()
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
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "PSCR: non-positive dimensions %dx%d", width, height)
	}

	rowBytes := (int(width) + 7) / 8
	outLen := rowBytes * int(height)
	rest, err := r.GetBytes(r.Remaining())
	if err != nil {
		return Artifact{}, err
	}

	var bits []byte
	switch version {
	case 1:
		bits, err = compress.DecodePSCRv1(rest)
	case 2:
		bits, err = compress.DecodePSCRv2(rest)
	default:
		return Artifact{}, rderr.Newf(rderr.KindUnsupportedFeature, "PSCR: unknown version %d", version)
	}
	if err != nil {
		return Artifact{}, err
	}
	if len(bits) < outLen {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "PSCR: decompressed %d bytes, need %d", len(bits), outLen)
	}
	bits = bits[:outLen]

	img, err := unpackMonoRows(bits, int(width), int(height), rowBytes, nil)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}
