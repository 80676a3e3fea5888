package compress

import (
	"testing"

	"github.com/retrodasm/resourcedasm/byteio"
)

func TestDC2HeaderChunkCountBits(t *testing.T) {
	tests := []struct {
		width int16
		want  int
	}{
		{1, 4},
		{16, 4},
		{17, 5},
		{64, 6},
		{65, 7},
		{200, 7},
	}
	for _, tt := range tests {
		h := DC2Header{Width: tt.width}
		if got := h.ChunkCountBits(); got != tt.want {
			t.Errorf("ChunkCountBits(width=%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestDecodeDC2PixelsZeroRun(t *testing.T) {
	hdr := DC2Header{Height: 1, Width: 4, BitsPerPixel: 2}
	// op=000 (3 bits), count=0011 (4 bits, chunk_count_bits=4) -> count+1=4
	// zeroes, exactly filling the 4-pixel image. Bits: 000 0011, padded
	// with a trailing 0 to fill the byte: 00000110.
	br := byteio.NewBitReader([]byte{0b00000110})
	out, err := DecodeDC2Pixels(br, hdr)
	if err != nil {
		t.Fatalf("DecodeDC2Pixels() failed: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("DecodeDC2Pixels() len = %d, want 4", len(out))
	}
	for _, v := range out {
		if v != 0 {
			t.Errorf("DecodeDC2Pixels() pixel = %d, want 0", v)
		}
	}
}
