package compress

import (
	"reflect"
	"testing"

	"github.com/retrodasm/resourcedasm/byteio"
)

func TestDecodePPicBlock4x4SingleRunBlock(t *testing.T) {
	// opcode nibble 0x0 (run), value nibble 0x5: one byte 0b0000_0101.
	r := byteio.NewBitReader([]byte{0x05})
	got, err := DecodePPicBlock4x4(r, 4, 4)
	if err != nil {
		t.Fatalf("DecodePPicBlock4x4() failed: %v", err)
	}
	want := make([]int, 16)
	for i := range want {
		want[i] = 5
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodePPicBlock4x4() = %v, want %v", got, want)
	}
}

func TestDecodePPicBlock4x4Uncompressed(t *testing.T) {
	// opcode nibble 0xA followed by 16 literal nibbles 0,1,...,15 then
	// wrapped modulo 16 so each fits in 4 bits.
	nibbles := make([]byte, 1+16)
	nibbles[0] = 0xA
	for i := 0; i < 16; i++ {
		nibbles[i+1] = byte(i % 16)
	}
	data := packNibbles(nibbles)
	r := byteio.NewBitReader(data)
	got, err := DecodePPicBlock4x4(r, 4, 4)
	if err != nil {
		t.Fatalf("DecodePPicBlock4x4() failed: %v", err)
	}
	want := make([]int, 16)
	for i := range want {
		want[i] = i % 16
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodePPicBlock4x4() = %v, want %v", got, want)
	}
}

func TestDecodePPicBlock4x4InvalidOpcode(t *testing.T) {
	data := packNibbles([]byte{0x8})
	r := byteio.NewBitReader(data)
	if _, err := DecodePPicBlock4x4(r, 4, 4); err == nil {
		t.Fatal("DecodePPicBlock4x4() expected error for reserved opcode 0x8")
	}
}

func TestDecodePPicBlock4x4TruncatesShortHeight(t *testing.T) {
	// Height 1 still takes one whole 4x4 run block from the stream; the
	// decoder should produce a 4x1 result with the band truncated to 1
	// row instead of 4.
	r := byteio.NewBitReader([]byte{0x05})
	got, err := DecodePPicBlock4x4(r, 4, 1)
	if err != nil {
		t.Fatalf("DecodePPicBlock4x4() failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("DecodePPicBlock4x4() returned %d values, want 4", len(got))
	}
	for _, v := range got {
		if v != 5 {
			t.Errorf("DecodePPicBlock4x4() = %v, want all 5s", got)
		}
	}
}

// packNibbles packs a sequence of 4-bit values MSB-first into bytes,
// matching the bit order DecodePPicBlock4x4 reads with GetBits(4).
func packNibbles(nibbles []byte) []byte {
	out := make([]byte, (len(nibbles)+1)/2)
	for i, n := range nibbles {
		shift := uint(4)
		if i%2 == 1 {
			shift = 0
		}
		out[i/2] |= (n & 0xF) << shift
	}
	return out
}
