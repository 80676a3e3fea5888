package compress

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func buildRUN4(decompSize uint32, c3, c4, c5, cv byte, body []byte) []byte {
	hdr := make([]byte, 12)
	copy(hdr[0:4], "RUN4")
	binary.BigEndian.PutUint32(hdr[4:8], decompSize)
	hdr[8], hdr[9], hdr[10], hdr[11] = c3, c4, c5, cv
	return append(hdr, body...)
}

func TestDecodeRUN4Literal(t *testing.T) {
	data := buildRUN4(3, 0xF0, 0xF1, 0xF2, 0xF3, []byte{1, 2, 3})
	got, err := DecodeRUN4(data)
	if err != nil {
		t.Fatalf("DecodeRUN4() failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("DecodeRUN4() = %v, want [1 2 3]", got)
	}
}

func TestDecodeRUN4Commands(t *testing.T) {
	// C3 run: 3 copies of 0xAA. CV run: count=2, value 0xBB -> 2 copies.
	data := buildRUN4(5, 0xF0, 0xF1, 0xF2, 0xF3, []byte{0xF0, 0xAA, 0xF3, 2, 0xBB})
	got, err := DecodeRUN4(data)
	if err != nil {
		t.Fatalf("DecodeRUN4() failed: %v", err)
	}
	want := []byte{0xAA, 0xAA, 0xAA, 0xBB, 0xBB}
	if !bytes.Equal(got, want) {
		t.Errorf("DecodeRUN4() = %v, want %v", got, want)
	}
}

func TestDecodeRUN4BadMagic(t *testing.T) {
	_, err := DecodeRUN4([]byte("XXXX0000000000"))
	if !rderr.Is(err, rderr.KindBadMagic) {
		t.Errorf("DecodeRUN4() bad magic: err = %v, want KindBadMagic", err)
	}
}

func TestDecodeCOOKShortCopy(t *testing.T) {
	hdr := make([]byte, 8)
	copy(hdr[0:4], "COOK")
	binary.BigEndian.PutUint32(hdr[4:8], 6)
	// literal 0 -> 'A', literal 0 -> 'B', literal 0 -> 'C', then a short
	// copy cmd=1 (length 3) with offset 3 (copies "ABC").
	body := []byte{0, 'A', 0, 'B', 0, 'C', 1, 3}
	got, err := DecodeCOOK(append(hdr, body...))
	if err != nil {
		t.Fatalf("DecodeCOOK() failed: %v", err)
	}
	want := []byte("ABCABC")
	if !bytes.Equal(got, want) {
		t.Errorf("DecodeCOOK() = %q, want %q", got, want)
	}
}

func TestDecodeMacSkiMultiIdentityWhenNoMagic(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	got, err := DecodeMacSkiMulti(data)
	if err != nil {
		t.Fatalf("DecodeMacSkiMulti() failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("DecodeMacSkiMulti() = %v, want unchanged %v", got, data)
	}
}
