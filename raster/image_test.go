package raster

import (
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func TestNewOpaqueVsTransparent(t *testing.T) {
	opaque, err := New(2, 2, false)
	if err != nil {
		t.Fatalf("New(opaque) failed: %v", err)
	}
	p, _ := opaque.Read(0, 0)
	if p.A != 255 {
		t.Errorf("opaque image alpha = %d, want 255", p.A)
	}

	transparent, err := New(2, 2, true)
	if err != nil {
		t.Fatalf("New(transparent) failed: %v", err)
	}
	p, _ = transparent.Read(0, 0)
	if p.A != 0 {
		t.Errorf("transparent image alpha = %d, want 0", p.A)
	}
}

func TestReadWriteOutOfBounds(t *testing.T) {
	img, _ := New(4, 4, false)
	if err := img.Write(4, 0, Opaque(1, 2, 3)); !rderr.Is(err, rderr.KindOutOfBounds) {
		t.Errorf("Write(4,0) on 4-wide image: err = %v, want KindOutOfBounds", err)
	}
	if _, err := img.Read(0, 4); !rderr.Is(err, rderr.KindOutOfBounds) {
		t.Errorf("Read(0,4) on 4-tall image: err = %v, want KindOutOfBounds", err)
	}
}

func TestBlitClipsDestination(t *testing.T) {
	src, _ := New(2, 2, false)
	_ = src.Write(0, 0, Opaque(9, 9, 9))
	_ = src.Write(1, 0, Opaque(8, 8, 8))

	dst, _ := New(2, 2, false)
	dst.Blit(src, 1, 0, 2, 2, 0, 0) // dx=1 means column 2 is clipped

	got, _ := dst.Read(1, 0)
	if got.R != 9 {
		t.Errorf("Blit() dst(1,0).R = %d, want 9", got.R)
	}
}

func TestMaskBlitSkipsColorKey(t *testing.T) {
	src, _ := New(2, 1, false)
	key := Opaque(255, 0, 255)
	_ = src.Write(0, 0, key)
	_ = src.Write(1, 0, Opaque(1, 2, 3))

	dst, _ := New(2, 1, false)
	_ = dst.Write(0, 0, Opaque(9, 9, 9))
	dst.MaskBlit(src, 0, 0, 2, 1, 0, 0, key)

	got, _ := dst.Read(0, 0)
	if got.R != 9 {
		t.Errorf("MaskBlit() overwrote color-keyed pixel: got %v, want unchanged", got)
	}
	got, _ = dst.Read(1, 0)
	if got.R != 1 {
		t.Errorf("MaskBlit() dst(1,0) = %v, want src pixel copied", got)
	}
}

func TestFillRectOverwritesWhenOpaque(t *testing.T) {
	img, _ := New(3, 3, false)
	img.FillRect(0, 0, 3, 3, Opaque(10, 20, 30))
	got, _ := img.Read(1, 1)
	if got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Errorf("FillRect() = %v, want opaque 10,20,30", got)
	}
}

func TestDrawLineNoOpWhenFullyOutside(t *testing.T) {
	img, _ := New(2, 2, false)
	img.DrawLine(-5, -5, -10, -10, Opaque(1, 1, 1))
	got, _ := img.Read(0, 0)
	if got.R != 0 {
		t.Errorf("DrawLine() fully outside mutated image, got %v", got)
	}
}

func TestMirrorFlipsHorizontally(t *testing.T) {
	img, _ := New(2, 1, false)
	_ = img.Write(0, 0, Opaque(1, 0, 0))
	_ = img.Write(1, 0, Opaque(2, 0, 0))
	img.Mirror()

	left, _ := img.Read(0, 0)
	right, _ := img.Read(1, 0)
	if left.R != 2 || right.R != 1 {
		t.Errorf("Mirror() = (%d,%d), want (2,1)", left.R, right.R)
	}
}
