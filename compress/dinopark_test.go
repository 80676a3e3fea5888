package compress

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildDinoParkHeader(magic string, compSize, decompSize uint32) []byte {
	hdr := make([]byte, 16)
	copy(hdr[0:4], magic)
	binary.BigEndian.PutUint32(hdr[4:8], compSize)
	binary.BigEndian.PutUint32(hdr[8:12], decompSize)
	return hdr
}

func TestDecodeDinoParkRLE(t *testing.T) {
	// cmd 2 -> literal run of 3 bytes; cmd 0xFE -> repeat next byte
	// (0x101-0xFE=3) times.
	body := []byte{2, 'a', 'b', 'c', 0xFE, 'x'}
	data := append(buildDinoParkHeader("RLE ", uint32(len(body)), 6), body...)
	got, err := DecodeDinoParkRLE(data)
	if err != nil {
		t.Fatalf("DecodeDinoParkRLE() failed: %v", err)
	}
	want := []byte("abcxxx")
	if !bytes.Equal(got, want) {
		t.Errorf("DecodeDinoParkRLE() = %q, want %q", got, want)
	}
}

func TestDecodeDinoParkDataDispatch(t *testing.T) {
	body := []byte{2, 'a', 'b', 'c'}
	data := append(buildDinoParkHeader("RLE ", uint32(len(body)), 3), body...)
	got, err := DecodeDinoParkData(data)
	if err != nil {
		t.Fatalf("DecodeDinoParkData() failed: %v", err)
	}
	if !bytes.Equal(got, []byte("abc")) {
		t.Errorf("DecodeDinoParkData() = %q, want %q", got, "abc")
	}

	identity := []byte{1, 2, 3, 4, 5}
	got, err = DecodeDinoParkData(identity)
	if err != nil {
		t.Fatalf("DecodeDinoParkData() identity failed: %v", err)
	}
	if !bytes.Equal(got, identity) {
		t.Errorf("DecodeDinoParkData() identity = %v, want %v", got, identity)
	}
}
