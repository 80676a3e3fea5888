package quickdraw

import (
	"testing"

	"github.com/retrodasm/resourcedasm/byteio"
)

func TestReadRect(t *testing.T) {
	r := byteio.NewReader([]byte{0, 10, 0, 20, 0, 110, 0, 120})
	rect, err := ReadRect(r)
	if err != nil {
		t.Fatalf("ReadRect() failed: %v", err)
	}
	if rect.Width() != 100 || rect.Height() != 100 {
		t.Errorf("ReadRect() dims = %dx%d, want 100x100", rect.Width(), rect.Height())
	}
}

func TestBitMapHeaderMasksRowBytesAndDetectsPixMap(t *testing.T) {
	r := byteio.NewReader([]byte{0xC0, 0x0A, 0, 0, 0, 0, 0, 5, 0, 10})
	hdr, isPixMap, err := ReadBitMapHeader(r)
	if err != nil {
		t.Fatalf("ReadBitMapHeader() failed: %v", err)
	}
	if hdr.RowBytes != 0x0A {
		t.Errorf("RowBytes = %d, want 10 (flag bits masked off)", hdr.RowBytes)
	}
	if !isPixMap {
		t.Errorf("isPixMap = false, want true for row-bytes flag 0xC0xx")
	}
}

func TestRasterSize(t *testing.T) {
	hdr := BitMapHeader{RowBytes: 4, Bounds: Rect{Y1: 0, X1: 0, Y2: 10, X2: 32}}
	if got := hdr.RasterSize(); got != 40 {
		t.Errorf("RasterSize() = %d, want 40", got)
	}
}
