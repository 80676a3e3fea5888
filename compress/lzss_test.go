package compress

import (
	"bytes"
	"testing"
)

func TestDecodeSoundMusicSysLZSSLiteralsOnly(t *testing.T) {
	// control byte 0xFF: all 8 bits literal.
	data := []byte{0xFF, 1, 2, 3, 4, 5, 6, 7, 8}
	got, err := DecodeSoundMusicSysLZSS(data)
	if err != nil {
		t.Fatalf("DecodeSoundMusicSysLZSS() failed: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("DecodeSoundMusicSysLZSS() = %v, want %v", got, want)
	}
}

func TestDecodePresageLZSSWithSizeHint(t *testing.T) {
	// control 0xFF: 4 literal bits -> but we only need 4 bytes of output.
	data := []byte{0xFF, 10, 20, 30, 40}
	got, err := DecodePresageLZSS(data, 4)
	if err != nil {
		t.Fatalf("DecodePresageLZSS() failed: %v", err)
	}
	want := []byte{10, 20, 30, 40}
	if !bytes.Equal(got, want) {
		t.Errorf("DecodePresageLZSS() = %v, want %v", got, want)
	}
}
