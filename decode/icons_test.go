package decode

import "testing"

func TestDecodeICON(t *testing.T) {
	data := make([]byte, 128) // 32x32, rowBytes=4, planeSize=128
	data[0] = 0x80             // top-left pixel set
	a, err := decodeICON(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeICON: %v", err)
	}
	c, err := a.Image.Read(0, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.A == 0 {
		t.Errorf("decodeICON(0,0) transparent, want opaque black")
	}
}

func TestDecodeSICNCount(t *testing.T) {
	data := make([]byte, 64) // two 32-byte frames
	a, err := decodeSICN(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeSICN: %v", err)
	}
	if len(a.Images) != 2 {
		t.Fatalf("decodeSICN: expected 2 images, got %d", len(a.Images))
	}
}

func TestDecodeSICNBadLength(t *testing.T) {
	if _, err := decodeSICN(make([]byte, 10), 0, Options{}); err == nil {
		t.Fatal("decodeSICN: expected error for non-multiple-of-32 length")
	}
}

func TestDefaultIndexedPaletteEndpoints(t *testing.T) {
	ct := defaultIndexedPalette(4)
	if ct.Len() != 16 {
		t.Fatalf("defaultIndexedPalette(4) has %d entries, want 16", ct.Len())
	}
	white, _ := ct.GetEntry(0)
	black, _ := ct.GetEntry(15)
	if white.R != 0xFFFF {
		t.Errorf("entry 0 = %+v, want white", white)
	}
	if black.R != 0 {
		t.Errorf("entry 15 = %+v, want black", black)
	}
}

func TestDecodeCurs(t *testing.T) {
	data := make([]byte, 68)
	data[0] = 0x80 // top-left bit set in bitmap plane
	a, err := decodeCurs(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeCurs: %v", err)
	}
	if a.Image.Width != 16 || a.Image.Height != 16 {
		t.Errorf("decodeCurs size = %dx%d, want 16x16", a.Image.Width, a.Image.Height)
	}
}

func TestDecodeCursTooShort(t *testing.T) {
	if _, err := decodeCurs(make([]byte, 10), 0, Options{}); err == nil {
		t.Fatal("decodeCurs: expected error for short resource")
	}
}
