// Package quickdraw implements the QuickDraw on-disk primitives that
// Macintosh resource decoders share: points, rectangles, fixed-point
// numbers, bit-map and pixel-map headers, region masks, and the
// PackBits-compressed scan-line convention used by PICT and pixel-map
// data.
package quickdraw

import (
	"github.com/retrodasm/resourcedasm/byteio"
)

// Point is (y, x) with signed 16-bit coordinates, the Mac convention.
type Point struct {
	Y, X int16
}

// Rect is (y1, x1, y2, x2), inclusive-top-left and exclusive-bottom-right.
type Rect struct {
	Y1, X1, Y2, X2 int16
}

// Width returns x2 - x1.
func (r Rect) Width() int { return int(r.X2 - r.X1) }

// Height returns y2 - y1.
func (r Rect) Height() int { return int(r.Y2 - r.Y1) }

// Fixed is a 16.16 signed fraction.
type Fixed int32

// Float64 converts a Fixed to a float64.
func (f Fixed) Float64() float64 { return float64(f) / 65536.0 }

// ReadPoint reads a big-endian Point.
func ReadPoint(r *byteio.Reader) (Point, error) {
	y, err := r.GetI16BE()
	if err != nil {
		return Point{}, err
	}
	x, err := r.GetI16BE()
	if err != nil {
		return Point{}, err
	}
	return Point{Y: y, X: x}, nil
}

// ReadRect reads a big-endian Rect.
func ReadRect(r *byteio.Reader) (Rect, error) {
	y1, err := r.GetI16BE()
	if err != nil {
		return Rect{}, err
	}
	x1, err := r.GetI16BE()
	if err != nil {
		return Rect{}, err
	}
	y2, err := r.GetI16BE()
	if err != nil {
		return Rect{}, err
	}
	x2, err := r.GetI16BE()
	if err != nil {
		return Rect{}, err
	}
	return Rect{Y1: y1, X1: x1, Y2: y2, X2: x2}, nil
}

// ReadFixed reads a big-endian 16.16 Fixed.
func ReadFixed(r *byteio.Reader) (Fixed, error) {
	v, err := r.GetI32BE()
	return Fixed(v), err
}

// BitMapHeader is the plain (1-bit) QuickDraw bit-map header.
type BitMapHeader struct {
	RowBytes int
	Bounds   Rect
}

// ReadBitMapHeader reads {row_bytes_and_flags: u16, bounds: Rect}. Bits
// 0x8000 and 0x4000 of the row-bytes field select a pix-map variant,
// which is reported via isPixMap so callers expecting a plain bit-map can
// reject it.
func ReadBitMapHeader(r *byteio.Reader) (hdr BitMapHeader, isPixMap bool, err error) {
	rb, err := r.GetU16BE()
	if err != nil {
		return BitMapHeader{}, false, err
	}
	bounds, err := ReadRect(r)
	if err != nil {
		return BitMapHeader{}, false, err
	}
	return BitMapHeader{RowBytes: int(rb & 0x3FFF), Bounds: bounds}, rb&0xC000 != 0, nil
}

// RasterSize returns row_bytes × bounds.height.
func (h BitMapHeader) RasterSize() int {
	return h.RowBytes * h.Bounds.Height()
}

// PixelMapHeader is the extended QuickDraw pixel-map header.
type PixelMapHeader struct {
	RowBytes      int
	Bounds        Rect
	Version       int16
	PackType      int16
	PackSize      int32
	HRes, VRes    Fixed
	PixelType     int16
	PixelSize     int16
	CmpCount      int16
	CmpSize       int16
	PlaneBytes    int32
	ColorTableRef uint32
	Reserved      int32
}

// ReadPixelMapHeader reads a full PixelMapHeader, including the row-bytes
// field with its high two flag bits masked off.
func ReadPixelMapHeader(r *byteio.Reader) (PixelMapHeader, error) {
	rb, err := r.GetU16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	bounds, err := ReadRect(r)
	if err != nil {
		return PixelMapHeader{}, err
	}
	version, err := r.GetI16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	packType, err := r.GetI16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	packSize, err := r.GetI32BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	hRes, err := ReadFixed(r)
	if err != nil {
		return PixelMapHeader{}, err
	}
	vRes, err := ReadFixed(r)
	if err != nil {
		return PixelMapHeader{}, err
	}
	pixelType, err := r.GetI16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	pixelSize, err := r.GetI16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	cmpCount, err := r.GetI16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	cmpSize, err := r.GetI16BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	planeBytes, err := r.GetI32BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	ctRef, err := r.GetU32BE()
	if err != nil {
		return PixelMapHeader{}, err
	}
	reserved, err := r.GetI32BE()
	if err != nil {
		return PixelMapHeader{}, err
	}

	return PixelMapHeader{
		RowBytes:      int(rb & 0x3FFF),
		Bounds:        bounds,
		Version:       version,
		PackType:      packType,
		PackSize:      packSize,
		HRes:          hRes,
		VRes:          vRes,
		PixelType:     pixelType,
		PixelSize:     pixelSize,
		CmpCount:      cmpCount,
		CmpSize:       cmpSize,
		PlaneBytes:    planeBytes,
		ColorTableRef: ctRef,
		Reserved:      reserved,
	}, nil
}

// RasterSize returns row_bytes × bounds.height.
func (h PixelMapHeader) RasterSize() int {
	return h.RowBytes * h.Bounds.Height()
}
