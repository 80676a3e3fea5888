package byteio

import (
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

func TestGetU16BE(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0xFF, 0xFE})

	got, err := r.GetU16BE()
	if err != nil {
		t.Fatalf("GetU16BE() failed: %v", err)
	}
	if got != 0x0102 {
		t.Errorf("GetU16BE() = %#x, want 0x0102", got)
	}

	got, err = r.GetU16BE()
	if err != nil {
		t.Fatalf("GetU16BE() failed: %v", err)
	}
	if got != 0xFFFE {
		t.Errorf("GetU16BE() = %#x, want 0xfffe", got)
	}
}

func TestGetU16LE(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	got, err := r.GetU16LE()
	if err != nil {
		t.Fatalf("GetU16LE() failed: %v", err)
	}
	if got != 0x0201 {
		t.Errorf("GetU16LE() = %#x, want 0x0201", got)
	}
}

func TestGetU32BEAndLE(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	got, err := r.GetU32BE()
	if err != nil {
		t.Fatalf("GetU32BE() failed: %v", err)
	}
	if got != 0x01020304 {
		t.Errorf("GetU32BE() = %#x, want 0x01020304", got)
	}

	r = NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	got, err = r.GetU32LE()
	if err != nil {
		t.Fatalf("GetU32LE() failed: %v", err)
	}
	if got != 0x04030201 {
		t.Errorf("GetU32LE() = %#x, want 0x04030201", got)
	}
}

func TestReadPastEndFailsUnexpectedEOF(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.GetU16BE()
	if !rderr.Is(err, rderr.KindUnexpectedEOF) {
		t.Errorf("GetU16BE() past end: err = %v, want KindUnexpectedEOF", err)
	}
}

func TestSubWindow(t *testing.T) {
	r := NewReader([]byte{0, 1, 2, 3, 4, 5})
	sub, err := r.Sub(2, 3)
	if err != nil {
		t.Fatalf("Sub() failed: %v", err)
	}
	b, err := sub.GetBytes(3)
	if err != nil {
		t.Fatalf("GetBytes() failed: %v", err)
	}
	want := []byte{2, 3, 4}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("sub window byte %d = %d, want %d", i, b[i], want[i])
		}
	}
}

func TestSubWindowExceedsParent(t *testing.T) {
	r := NewReader([]byte{0, 1, 2})
	_, err := r.Sub(1, 10)
	if !rderr.Is(err, rderr.KindOutOfBounds) {
		t.Errorf("Sub() exceeding parent: err = %v, want KindOutOfBounds", err)
	}
}

func TestSeekAndSkip(t *testing.T) {
	r := NewReader([]byte{0, 1, 2, 3, 4})
	if err := r.Seek(3); err != nil {
		t.Fatalf("Seek() failed: %v", err)
	}
	if r.Where() != 3 {
		t.Errorf("Where() = %d, want 3", r.Where())
	}
	if err := r.Skip(1); err != nil {
		t.Fatalf("Skip() failed: %v", err)
	}
	if r.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", r.Remaining())
	}
}
