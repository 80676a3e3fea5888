package quickdraw

import (
	"testing"

	"github.com/retrodasm/resourcedasm/byteio"
)

func TestReadRegionWithNoRunData(t *testing.T) {
	// size=10 (header-only), bounds 4x4.
	data := []byte{0, 10, 0, 0, 0, 0, 0, 4, 0, 4}
	reg, err := ReadRegion(byteio.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRegion() failed: %v", err)
	}
	if !reg.Inside(2, 2) {
		t.Errorf("Inside(2,2) = false, want true for a full-box region")
	}
	if reg.Inside(5, 5) {
		t.Errorf("Inside(5,5) = true, want false outside bounds")
	}
}

func TestReadRegionWithRunRow(t *testing.T) {
	// bounds (0,0)-(4,4); row y=1 has a single boundary at x=2, so
	// columns [0,2) are outside and [2,4) are inside.
	data := []byte{
		0, 18, // total region size in bytes
		0, 0, 0, 0, 0, 4, 0, 4, // bounds
		0, 1, 0, 2, 0x7F, 0xFF, // row y=1: boundary at x=2, row terminator
		0x7F, 0xFF, // region terminator
	}
	reg, err := ReadRegion(byteio.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRegion() failed: %v", err)
	}
	if reg.Inside(0, 1) {
		t.Errorf("Inside(0,1) = true, want false (before boundary)")
	}
	if !reg.Inside(2, 1) {
		t.Errorf("Inside(2,1) = false, want true (at/after boundary)")
	}
	if !reg.Inside(0, 0) {
		t.Errorf("Inside(0,0) = false, want true (row with no run data defaults inside)")
	}
}
