package byteio

import "testing"

func TestGetBitsMSBFirst(t *testing.T) {
	// 0b10110010, 0b01010101
	br := NewBitReader([]byte{0xB2, 0x55})

	tests := []struct {
		width uint
		want  uint32
	}{
		{1, 1},
		{3, 0b011},
		{4, 0b0010},
		{8, 0b01010101},
	}

	for _, tt := range tests {
		got, err := br.GetBits(tt.width)
		if err != nil {
			t.Fatalf("GetBits(%d) failed: %v", tt.width, err)
		}
		if got != tt.want {
			t.Errorf("GetBits(%d) = %#b, want %#b", tt.width, got, tt.want)
		}
	}
}

func TestGetBitsAcrossByteBoundary(t *testing.T) {
	br := NewBitReader([]byte{0xFF, 0x00})
	got, err := br.GetBits(12)
	if err != nil {
		t.Fatalf("GetBits(12) failed: %v", err)
	}
	if got != 0xFF0 {
		t.Errorf("GetBits(12) = %#x, want 0xff0", got)
	}
}

func TestDecodeByteResetsBitBuffer(t *testing.T) {
	br := NewBitReader([]byte{0xFF, 0xAB})
	if _, err := br.GetBits(3); err != nil {
		t.Fatalf("GetBits(3) failed: %v", err)
	}
	b, err := br.DecodeByte()
	if err != nil {
		t.Fatalf("DecodeByte() failed: %v", err)
	}
	if b != 0xAB {
		t.Errorf("DecodeByte() = %#x, want 0xab", b)
	}
}
