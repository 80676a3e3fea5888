package decode

import (
	"testing"

	"github.com/retrodasm/resourcedasm/colortable"
)

func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func TestDecodeBTMP(t *testing.T) {
	data := []byte{0, 0, 0, 0} // pointer placeholder
	data = append(data, be16(1)...)    // row_bytes_and_flags = 1, no pixmap flags
	data = append(data, be16(0)...)    // bounds.Y1
	data = append(data, be16(0)...)    // bounds.X1
	data = append(data, be16(2)...)    // bounds.Y2
	data = append(data, be16(8)...)    // bounds.X2
	data = append(data, 0x80, 0x00)    // two rows, 1 byte each

	a, err := decodeBTMP(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeBTMP: %v", err)
	}
	if a.Image.Width != 8 || a.Image.Height != 2 {
		t.Fatalf("decodeBTMP size = %dx%d, want 8x2", a.Image.Width, a.Image.Height)
	}
	c, _ := a.Image.Read(0, 0)
	if c.R != 0 {
		t.Errorf("decodeBTMP(0,0) = %+v, want black", c)
	}
}

func TestDecode1img(t *testing.T) {
	data := make([]byte, 4*21)
	a, err := decode1img(data, 0, Options{})
	if err != nil {
		t.Fatalf("decode1img: %v", err)
	}
	if a.Image.Width != 32 || a.Image.Height != 21 {
		t.Errorf("decode1img size = %dx%d, want 32x21", a.Image.Width, a.Image.Height)
	}
}

func TestDecode4imgNeedsPalette(t *testing.T) {
	data := make([]byte, 16*21)
	if _, err := decode4img(data, 0, Options{}); err == nil {
		t.Fatal("decode4img: expected error without palette")
	}
	ct, _ := colortable.FromEntries(0, []int{0}, []colortable.Color{{R: 0xFFFF, G: 0xFFFF, B: 0xFFFF}})
	if _, err := decode4img(data, 0, Options{Palette: ct}); err != nil {
		t.Fatalf("decode4img with palette: %v", err)
	}
}

func TestDecode8imgSize(t *testing.T) {
	data := make([]byte, 40*21)
	ct, _ := colortable.FromEntries(0, []int{0}, []colortable.Color{{R: 0, G: 0, B: 0}})
	a, err := decode8img(data, 0, Options{Palette: ct})
	if err != nil {
		t.Fatalf("decode8img: %v", err)
	}
	if a.Image.Width != 40 || a.Image.Height != 21 {
		t.Errorf("decode8img size = %dx%d, want 40x21", a.Image.Width, a.Image.Height)
	}
}
