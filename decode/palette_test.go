package decode

import (
	"testing"

	"github.com/retrodasm/resourcedasm/raster"
)

func TestDecodeCLUT(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x00, 0x00, // seed
		0x00, 0x00, // flags
		0x00, 0x00, // num_entries_minus_1 = 0 -> 1 entry
		0x00, 0x05, // id
		0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, // red
	}
	a, err := decodeCLUT(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeCLUT: %v", err)
	}
	if a.Palette == nil || a.Palette.Len() != 1 {
		t.Fatalf("decodeCLUT: expected 1 palette entry")
	}
	c, ok := a.Palette.GetEntry(5)
	if !ok || c.R != 0xFFFF {
		t.Errorf("decodeCLUT entry 5 = %+v, ok=%v", c, ok)
	}
}

func TestDecodePLTT(t *testing.T) {
	data := []byte{
		0x00, 0x01, // num_entries_minus_1 = 1 -> 2 entries
		0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, // entry 0: red
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // usage/tol/priv/unused
		0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, // entry 1: green
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	a, err := decodePLTT(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodePLTT: %v", err)
	}
	if a.Palette.Len() != 2 {
		t.Fatalf("decodePLTT: expected 2 entries, got %d", a.Palette.Len())
	}
	c0, _ := a.Palette.GetEntry(0)
	c1, _ := a.Palette.GetEntry(1)
	if c0.R != 0xFFFF || c1.G != 0xFFFF {
		t.Errorf("decodePLTT entries = %+v, %+v", c0, c1)
	}
}

func TestDecodePATChecker(t *testing.T) {
	data := []byte{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55}
	a, err := decodePAT(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodePAT: %v", err)
	}
	c, err := a.Image.Read(0, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c != raster.Opaque(0, 0, 0) {
		t.Errorf("decodePAT(0,0) = %+v, want black", c)
	}
}

func TestDecodePpatMonochromeFallback(t *testing.T) {
	data := make([]byte, 28)
	data[0], data[1] = 0x00, 0x00 // type = 0
	copy(data[20:28], []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	a, err := decodePpat(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodePpat: %v", err)
	}
	if a.Kind != KindImage {
		t.Errorf("decodePpat kind = %v, want image", a.Kind)
	}
}
