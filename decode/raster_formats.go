package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/colortable"
	"github.com/retrodasm/resourcedasm/quickdraw"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// decodeMonochromeImage renders a tightly row-packed 1-bit-per-pixel
// image (bit set = black, MSB-first, each row occupying exactly rowBytes
// bytes) into an opaque raster.
func decodeMonochromeImage(data []byte, width, height, rowBytes int) (*raster.Image, error) {
	need := rowBytes * height
	if len(data) < need {
		return nil, rderr.Newf(rderr.KindUnexpectedEOF, "monochrome image needs %d bytes, has %d", need, len(data))
	}
	img, err := raster.New(width, height, false)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		row := data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < width; x++ {
			bit := (row[x/8] >> uint(7-x%8)) & 1
			if bit != 0 {
				_ = img.Write(x, y, raster.Opaque(0, 0, 0))
			} else {
				_ = img.Write(x, y, raster.Opaque(0xFF, 0xFF, 0xFF))
			}
		}
	}
	return img, nil
}

// decodeIndexedImage renders a tightly row-packed indexed-color image at
// the given bit depth (rows padded to a byte boundary, pixel value is
// looked up directly as a palette id) into an opaque raster.
func decodeIndexedImage(data []byte, width, height, bitsPerPixel int, ct *colortable.ColorTable) (*raster.Image, error) {
	pixelsPerByte := 8 / bitsPerPixel
	rowBytes := (width + pixelsPerByte - 1) / pixelsPerByte
	need := rowBytes * height
	if len(data) < need {
		return nil, rderr.Newf(rderr.KindUnexpectedEOF, "indexed image needs %d bytes, has %d", need, len(data))
	}
	img, err := raster.New(width, height, false)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		row := data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < width; x++ {
			idx := readIndex(row, x, bitsPerPixel, pixelsPerByte)
			c, err := ct.MustGetEntry(idx)
			if err != nil {
				return nil, err
			}
			_ = img.Write(x, y, raster.Opaque(c.R8(), c.G8(), c.B8()))
		}
	}
	return img, nil
}

// decodeBMap reads a DinoPark-Tycoon-family 'BMap' sprite: a 4-byte
// in-memory pointer placeholder, a BitMapHeader, an unknown 4-byte field,
// a redundant image-byte-count, a mask-region byte count, the packed
// monochrome bitmap, and finally a QuickDraw region describing per-pixel
// transparency.
func decodeBMap(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	if _, err := r.GetU32BE(); err != nil { // in-memory bitmap pointer, ignored
		return Artifact{}, err
	}
	hdr, isPixMap, err := quickdraw.ReadBitMapHeader(r)
	if err != nil {
		return Artifact{}, err
	}
	if isPixMap {
		return Artifact{}, rderr.New(rderr.KindUnsupportedFeature, "BMap: expected a monochrome bitmap header, found pixel-map flags")
	}
	imageBytes := hdr.RasterSize()
	if _, err := r.GetU32BE(); err != nil { // unknown
		return Artifact{}, err
	}
	declaredBytes, err := r.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}
	if int(declaredBytes) != imageBytes {
		return Artifact{}, rderr.Newf(rderr.KindCorruptSize, "BMap: declared image size %d does not match header (%d)", declaredBytes, imageBytes)
	}
	if _, err := r.GetU32BE(); err != nil { // mask region byte count, unused
		return Artifact{}, err
	}
	bits, err := r.GetBytes(imageBytes)
	if err != nil {
		return Artifact{}, err
	}
	img, err := decodeMonochromeImage(bits, hdr.Bounds.Width(), hdr.Bounds.Height(), hdr.RowBytes)
	if err != nil {
		return Artifact{}, err
	}

	region, err := quickdraw.ReadRegion(r)
	if err != nil {
		return Artifact{}, err
	}
	img2, err := raster.New(img.Width, img.Height, true)
	if err != nil {
		return Artifact{}, err
	}
	region.Each(func(x, y int, inside bool) {
		localX, localY := x-int(hdr.Bounds.X1), y-int(hdr.Bounds.Y1)
		c, err := img.Read(localX, localY)
		if err != nil {
			return
		}
		if !inside {
			c.A = 0
		}
		_ = img2.Write(localX, localY, c)
	})
	return Artifact{Kind: KindImage, Image: img2}, nil
}

// decodeBTMP reads a Blobbo-family 'BTMP' sprite: a 4-byte pointer
// placeholder followed by a BitMapHeader and its tightly-packed bits,
// with no mask.
func decodeBTMP(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	if _, err := r.GetU32BE(); err != nil {
		return Artifact{}, err
	}
	hdr, isPixMap, err := quickdraw.ReadBitMapHeader(r)
	if err != nil {
		return Artifact{}, err
	}
	if isPixMap {
		return Artifact{}, rderr.New(rderr.KindUnsupportedFeature, "BTMP: expected a monochrome bitmap header, found pixel-map flags")
	}
	bits, err := r.GetBytes(hdr.RasterSize())
	if err != nil {
		return Artifact{}, err
	}
	img, err := decodeMonochromeImage(bits, hdr.Bounds.Width(), hdr.Bounds.Height(), hdr.RowBytes)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decodePMP8 reads a Blobbo-family 'PMP8' sprite: a 4-byte pointer
// placeholder, a PixelMapHeader (device-color flag set), then tightly
// packed 8-bit indexed pixel data (no PackBits compression), resolved
// against the required palette.
func decodePMP8(data []byte, _ int16, opts Options) (Artifact, error) {
	if opts.Palette == nil {
		return Artifact{}, rderr.New(rderr.KindMissingResource, "PMP8: needs a palette (pass Options.Palette)")
	}
	r := byteio.NewReader(data)
	if _, err := r.GetU32BE(); err != nil {
		return Artifact{}, err
	}
	hdr, err := quickdraw.ReadPixelMapHeader(r)
	if err != nil {
		return Artifact{}, err
	}
	width, height := hdr.Bounds.Width(), hdr.Bounds.Height()
	bits, err := r.GetBytes(hdr.RowBytes * height)
	if err != nil {
		return Artifact{}, err
	}
	img, err := decodeIndexedImage(bits, width, height, 8, opts.Palette)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decode1img reads a Factory-family '1img' sprite: a bare, headerless
// 32x21 monochrome image (row_bytes = 4, the minimum for a 68k-aligned
// row), with no declared size or mask of its own.
func decode1img(data []byte, _ int16, _ Options) (Artifact, error) {
	img, err := decodeMonochromeImage(data, 32, 21, 4)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decode4img reads a Factory-family '4img' sprite: a bare 32x21 4-bit
// indexed image with no header, resolved against the required palette.
func decode4img(data []byte, _ int16, opts Options) (Artifact, error) {
	if opts.Palette == nil {
		return Artifact{}, rderr.New(rderr.KindMissingResource, "4img: needs a palette (pass Options.Palette)")
	}
	img, err := decodeIndexedImage(data, 32, 21, 4, opts.Palette)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}

// decode8img reads a Factory-family '8img' sprite: a bare 40x21 8-bit
// indexed image with no header, resolved against the required palette.
func decode8img(data []byte, _ int16, opts Options) (Artifact, error) {
	if opts.Palette == nil {
		return Artifact{}, rderr.New(rderr.KindMissingResource, "8img: needs a palette (pass Options.Palette)")
	}
	img, err := decodeIndexedImage(data, 40, 21, 8, opts.Palette)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindImage, Image: img}, nil
}
