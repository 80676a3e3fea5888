package decode

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/colortable"
	"github.com/retrodasm/resourcedasm/quickdraw"
	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// decodePixMapAt reads a PixelMapHeader from hdrReader, then unpacks its
// pixel data (starting at pixDataOffset within fullData, row_bytes >= 8
// rows individually PackBits-compressed per QuickDraw convention) into an
// RGBA image, resolving indexed pixels against palette. Only the indexed
// pixel sizes (1/2/4/8 bits) this corpus's color icons and patterns
// actually use are supported; direct (16/32-bit) pixel maps report
// KindUnsupportedFeature.
func decodePixMapAt(hdrReader *byteio.Reader, fullData []byte, pixDataOffset int, palette *colortable.ColorTable) (*raster.Image, error) {
	hdr, err := quickdraw.ReadPixelMapHeader(hdrReader)
	if err != nil {
		return nil, err
	}
	if hdr.PixelSize > 8 {
		return nil, rderr.Newf(rderr.KindUnsupportedFeature, "direct pixel maps (%d bits/pixel) are not supported", hdr.PixelSize)
	}
	width, height := hdr.Bounds.Width(), hdr.Bounds.Height()
	if width <= 0 || height <= 0 {
		return nil, rderr.Newf(rderr.KindCorruptSize, "pixel map has non-positive bounds %dx%d", width, height)
	}

	pixReader, err := byteio.NewReader(fullData).Sub(pixDataOffset, len(fullData)-pixDataOffset)
	if err != nil {
		return nil, err
	}

	img, err := raster.New(width, height, false)
	if err != nil {
		return nil, err
	}

	pixelsPerByte := 8 / int(hdr.PixelSize)
	for y := 0; y < height; y++ {
		row, err := quickdraw.ReadPackBitsRow(pixReader, hdr.RowBytes)
		if err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			idx := readIndex(row, x, int(hdr.PixelSize), pixelsPerByte)
			c, err := palette.MustGetEntry(idx)
			if err != nil {
				return nil, err
			}
			_ = img.Write(x, y, raster.Opaque(c.R8(), c.G8(), c.B8()))
		}
	}
	return img, nil
}

// readIndex extracts the x'th packed palette index from a pixel-map row,
// bitSize bits wide, MSB-first within each byte.
func readIndex(row []byte, x, bitSize, pixelsPerByte int) int {
	if bitSize == 8 {
		return int(row[x])
	}
	byteIdx := x / pixelsPerByte
	shift := uint(8 - bitSize*(x%pixelsPerByte+1))
	mask := byte(1<<uint(bitSize) - 1)
	return int((row[byteIdx] >> shift) & mask)
}
