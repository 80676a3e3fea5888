package compress

import (
	"bytes"
	"testing"
)

func TestPackBitsRoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		{1, 2, 3, 4, 5},
		{9, 9, 9, 9, 9, 9, 9, 9, 9, 9},
		{1, 1, 1, 2, 3, 3, 3, 3, 4},
		bytes.Repeat([]byte{0x42}, 300),
	}

	for _, tt := range tests {
		packed := PackBits(tt)
		got, err := UnpackBits(packed, -1)
		if err != nil {
			t.Fatalf("UnpackBits(PackBits(%v)) failed: %v", tt, err)
		}
		if !bytes.Equal(got, tt) {
			t.Errorf("UnpackBits(PackBits(%v)) = %v, want %v", tt, got, tt)
		}
	}
}

func TestUnpackBitsLiteralAndRepeat(t *testing.T) {
	// c=2 (literal run of 3), then c=-2 (repeat next byte 3 times).
	data := []byte{2, 0x01, 0x02, 0x03, 0xFE, 0xAA}
	got, err := UnpackBits(data, -1)
	if err != nil {
		t.Fatalf("UnpackBits() failed: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0xAA, 0xAA, 0xAA}
	if !bytes.Equal(got, want) {
		t.Errorf("UnpackBits() = %v, want %v", got, want)
	}
}

func TestUnpackBitsNoOp(t *testing.T) {
	// c=-128 (0x80) is a no-op; c=0 then copies the one byte after it.
	data := []byte{0x80, 0x00, 0x01}
	got, err := UnpackBits(data, -1)
	if err != nil {
		t.Fatalf("UnpackBits() failed: %v", err)
	}
	want := []byte{0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("UnpackBits() = %v, want %v", got, want)
	}
}

func TestUnpackBitsBoundedOutput(t *testing.T) {
	// Two literal-run commands of 3 bytes each; a maxOut of 3 should stop
	// at the first command boundary rather than splitting the second run.
	data := []byte{2, 1, 2, 3, 2, 4, 5, 6}
	got, err := UnpackBits(data, 3)
	if err != nil {
		t.Fatalf("UnpackBits() failed: %v", err)
	}
	want := []byte{1, 2, 3}
	if !bytes.Equal(got, want) {
		t.Errorf("UnpackBits(maxOut=3) = %v, want %v", got, want)
	}
}

func TestUnpackICNSRLE(t *testing.T) {
	// c=0x82 (0x80+2): repeat next byte (2-0+3=5) times.
	data := []byte{0x82, 0x7F}
	got, err := UnpackICNSRLE(data, -1)
	if err != nil {
		t.Fatalf("UnpackICNSRLE() failed: %v", err)
	}
	want := bytes.Repeat([]byte{0x7F}, 5)
	if !bytes.Equal(got, want) {
		t.Errorf("UnpackICNSRLE() = %v, want %v", got, want)
	}
}
