package colortable

import (
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func TestFromEntriesAndGetEntry(t *testing.T) {
	ct, err := FromEntries(0, []int{5, 2, 9}, []Color{
		{R: 0xFFFF, G: 0, B: 0},
		{R: 0, G: 0xFFFF, B: 0},
		{R: 0, G: 0, B: 0xFFFF},
	})
	if err != nil {
		t.Fatalf("FromEntries() failed: %v", err)
	}

	got, ok := ct.GetEntry(9)
	if !ok {
		t.Fatalf("GetEntry(9) not found")
	}
	if got.B8() != 0xFF {
		t.Errorf("GetEntry(9).B8() = %#x, want 0xff", got.B8())
	}

	if _, ok := ct.GetEntry(100); ok {
		t.Errorf("GetEntry(100) found, want not found")
	}
}

func TestFromEntriesLengthMismatch(t *testing.T) {
	_, err := FromEntries(0, []int{1, 2}, []Color{{}})
	if !rderr.Is(err, rderr.KindCorruptSize) {
		t.Errorf("FromEntries() mismatched lengths: err = %v, want KindCorruptSize", err)
	}
}

func TestIsDeviceIndexed(t *testing.T) {
	ct, _ := FromEntries(0x8000, nil, nil)
	if !ct.IsDeviceIndexed() {
		t.Errorf("IsDeviceIndexed() = false, want true")
	}
}

func TestFromRGB555ExpandsTopBits(t *testing.T) {
	// Pure 5-bit red (0x1F) should expand to 0xFFFF.
	c := FromRGB555(0x1F << 10)
	if c.R != 0xFFFF {
		t.Errorf("FromRGB555 red = %#x, want 0xffff", c.R)
	}
	if c.G != 0 || c.B != 0 {
		t.Errorf("FromRGB555 green/blue = %#x/%#x, want 0/0", c.G, c.B)
	}
}

func TestMustGetEntryMissing(t *testing.T) {
	ct, _ := FromEntries(0, nil, nil)
	_, err := ct.MustGetEntry(3)
	if !rderr.Is(err, rderr.KindMissingResource) {
		t.Errorf("MustGetEntry() on empty table: err = %v, want KindMissingResource", err)
	}
}
