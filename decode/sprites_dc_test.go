package decode

import "testing"

func TestDecodeDC2ZeroRun(t *testing.T) {
	data := []byte{
		0x00, 0x01, // height = 1
		0x00, 0x04, // width = 4
		0x01,       // bpp_minus_one = 1 -> 2 bits per pixel
		0x00, 0x00, // unk
		0x00,       // generate_mask = false
		0b00000110, // op=000, count=0011 -> 4 zero pixels
	}
	a, err := decodeDC2(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeDC2: %v", err)
	}
	if a.Image.Width != 4 || a.Image.Height != 1 {
		t.Fatalf("decodeDC2 size = %dx%d, want 4x1", a.Image.Width, a.Image.Height)
	}
	c, err := a.Image.Read(0, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.A == 0 {
		t.Errorf("decodeDC2(0,0) transparent, want opaque (generate_mask false)")
	}
}

func TestDecodeDC2BadDimensions(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if _, err := decodeDC2(data, 0, Options{}); err == nil {
		t.Fatal("decodeDC2: expected error for zero dimensions")
	}
}
