package decode

import "testing"

func TestDecodePPicResourceSolidBlock(t *testing.T) {
	data := []byte{
		0x00, 0x04, // width = 4
		0x00, 0x04, // height = 4
		0x05, // opHi=0x0, fill value nibble=5
	}
	a, err := decodePPicResource(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodePPicResource: %v", err)
	}
	if a.Image.Width != 4 || a.Image.Height != 4 {
		t.Fatalf("decodePPicResource size = %dx%d, want 4x4", a.Image.Width, a.Image.Height)
	}
	c, err := a.Image.Read(2, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.A == 0 {
		t.Errorf("decodePPicResource(2,2) transparent, want opaque")
	}
}

func TestDecodePPicResourceBadDimensions(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x04}
	if _, err := decodePPicResource(data, 0, Options{}); err == nil {
		t.Fatal("decodePPicResource: expected error for zero width")
	}
}
