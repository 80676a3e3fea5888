// Package raster implements the in-memory RGBA8888 canvas every resource
// decoder composites into, plus PPM and Windows Bitmap file emission.
package raster

import (
	"github.com/retrodasm/resourcedasm/rderr"
)

// RGBA is a little-endian byte-packed (R, G, B, A) pixel. This is an
// output convention only, decoupled from any on-disk encoding.
type RGBA struct {
	R, G, B, A uint8
}

// Transparent is the zero-alpha sentinel many decoders composite against.
var Transparent = RGBA{}

// Opaque builds a fully opaque RGBA from 8-bit channels.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Image is a width × height array of RGBA pixels, origin (0,0) at
// top-left, stored contiguous in row-major order.
type Image struct {
	Width, Height int
	pix           []RGBA
}

// New allocates an image: fully opaque black when withAlpha is false,
// fully transparent when withAlpha is true.
func New(width, height int, withAlpha bool) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, rderr.Newf(rderr.KindCorruptSize, "image dimensions must be positive, got %dx%d", width, height)
	}
	img := &Image{Width: width, Height: height, pix: make([]RGBA, width*height)}
	if !withAlpha {
		for i := range img.pix {
			img.pix[i] = RGBA{A: 255}
		}
	}
	return img, nil
}

func (img *Image) index(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0, rderr.Newf(rderr.KindOutOfBounds, "pixel (%d,%d) outside %dx%d image", x, y, img.Width, img.Height)
	}
	return y*img.Width + x, nil
}

// Read returns the pixel at (x, y).
func (img *Image) Read(x, y int) (RGBA, error) {
	i, err := img.index(x, y)
	if err != nil {
		return RGBA{}, err
	}
	return img.pix[i], nil
}

// Write sets the pixel at (x, y).
func (img *Image) Write(x, y int, c RGBA) error {
	i, err := img.index(x, y)
	if err != nil {
		return err
	}
	img.pix[i] = c
	return nil
}

// Blit copies a w×h window of src starting at (sx, sy) into self at
// (dx, dy). Destination pixels outside bounds are silently clipped.
func (img *Image) Blit(src *Image, dx, dy, w, h, sx, sy int) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			sc, err := src.Read(sx+col, sy+row)
			if err != nil {
				continue
			}
			_ = img.Write(dx+col, dy+row, sc)
		}
	}
}

// MaskBlit is Blit but skips any source pixel whose RGB equals keyRGB.
func (img *Image) MaskBlit(src *Image, dx, dy, w, h, sx, sy int, keyRGB RGBA) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			sc, err := src.Read(sx+col, sy+row)
			if err != nil {
				continue
			}
			if sc.R == keyRGB.R && sc.G == keyRGB.G && sc.B == keyRGB.B {
				continue
			}
			_ = img.Write(dx+col, dy+row, sc)
		}
	}
}

// FillRect alpha-blends rgba into the rectangle when rgba.A < 255, and
// overwrites outright when rgba.A == 255.
func (img *Image) FillRect(x, y, w, h int, rgba RGBA) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if rgba.A == 255 {
				_ = img.Write(col, row, rgba)
				continue
			}
			existing, err := img.Read(col, row)
			if err != nil {
				continue
			}
			_ = img.Write(col, row, blend(existing, rgba))
		}
	}
}

func blend(dst, src RGBA) RGBA {
	a := uint32(src.A)
	inv := 255 - a
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*inv) / 255)
	}
	return RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: uint8((a*255 + uint32(dst.A)*inv) / 255),
	}
}

// DrawLine draws a Bresenham line between (x0,y0) and (x1,y1). A call is a
// no-op when both endpoints are fully outside bounds.
func (img *Image) DrawLine(x0, y0, x1, y1 int, rgb RGBA) {
	if img.fullyOutside(x0, y0) && img.fullyOutside(x1, y1) {
		return
	}

	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		_ = img.Write(x, y, rgb)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (img *Image) fullyOutside(x, y int) bool {
	return x < 0 || y < 0 || x >= img.Width || y >= img.Height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Mirror flips the image horizontally in place.
func (img *Image) Mirror() {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width/2; x++ {
			left := y*img.Width + x
			right := y*img.Width + (img.Width - 1 - x)
			img.pix[left], img.pix[right] = img.pix[right], img.pix[left]
		}
	}
}
