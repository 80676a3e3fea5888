package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

type fakeDecompressor struct {
	calls int
}

func (f *fakeDecompressor) Decompress(dcmpID int16, payload []byte) ([]byte, error) {
	f.calls++
	out := make([]byte, len(payload))
	for i, b := range payload {
		out[i] = b ^ 0xFF
	}
	return out, nil
}

func compressedResourceBytes(dcmpID int16, payload []byte) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint16(6)) // header_len
	binary.Write(buf, binary.BigEndian, uint16(compressedHeaderMagic))
	binary.Write(buf, binary.BigEndian, dcmpID)
	buf.Write(payload)
	return buf.Bytes()
}

func TestGetResourceDataDecompressesAndCaches(t *testing.T) {
	dec := &fakeDecompressor{}
	c := newContainer(&Options{Decompressor: dec})
	c.add(Resource{
		Type:  "snd ",
		ID:    1,
		Attrs: attrCompressed,
		Bytes: compressedResourceBytes(2, []byte{0x00, 0x0F, 0xF0}),
	})

	got, err := c.GetResourceData("snd ", 1, true)
	if err != nil {
		t.Fatalf("GetResourceData() failed: %v", err)
	}
	want := []byte{0xFF, 0xF0, 0x0F}
	if !bytes.Equal(got, want) {
		t.Errorf("GetResourceData() = %v, want %v", got, want)
	}
	if dec.calls != 1 {
		t.Fatalf("Decompress called %d times after first fetch, want 1", dec.calls)
	}

	if _, err := c.GetResourceData("snd ", 1, true); err != nil {
		t.Fatalf("second GetResourceData() failed: %v", err)
	}
	if dec.calls != 1 {
		t.Errorf("Decompress called %d times after cached fetch, want 1 (result should be cached)", dec.calls)
	}
}

func TestGetResourceDataUncompressedSkipsDecompressor(t *testing.T) {
	c := newContainer(nil)
	c.add(Resource{Type: "STR ", ID: 1, Bytes: []byte("hello")})

	got, err := c.GetResourceData("STR ", 1, true)
	if err != nil {
		t.Fatalf("GetResourceData() failed: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("GetResourceData() = %q, want %q", got, "hello")
	}
}

func TestGetResourceDataNoDecompressorConfigured(t *testing.T) {
	c := newContainer(nil)
	c.add(Resource{
		Type:  "snd ",
		ID:    1,
		Attrs: attrCompressed,
		Bytes: compressedResourceBytes(2, []byte{1, 2, 3}),
	})

	_, err := c.GetResourceData("snd ", 1, true)
	if !rderr.Is(err, rderr.KindUnsupportedFeature) {
		t.Errorf("GetResourceData() err = %v, want KindUnsupportedFeature", err)
	}
}

func TestGetResourceDataWithoutDecompressFlagReturnsRaw(t *testing.T) {
	dec := &fakeDecompressor{}
	c := newContainer(&Options{Decompressor: dec})
	raw := compressedResourceBytes(2, []byte{1, 2, 3})
	c.add(Resource{Type: "snd ", ID: 1, Attrs: attrCompressed, Bytes: raw})

	got, err := c.GetResourceData("snd ", 1, false)
	if err != nil {
		t.Fatalf("GetResourceData() failed: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Errorf("GetResourceData(decompress=false) = %v, want raw %v", got, raw)
	}
	if dec.calls != 0 {
		t.Errorf("Decompressor should not be invoked when decompress=false")
	}
}

func TestResourceIsCompressed(t *testing.T) {
	c := newContainer(nil)
	c.add(Resource{Type: "snd ", ID: 1, Attrs: attrCompressed, Bytes: []byte{1}})
	c.add(Resource{Type: "snd ", ID: 2, Bytes: []byte{1}})

	compressed, err := c.ResourceIsCompressed("snd ", 1)
	if err != nil || !compressed {
		t.Errorf("ResourceIsCompressed(1) = %v, %v, want true, nil", compressed, err)
	}
	plain, err := c.ResourceIsCompressed("snd ", 2)
	if err != nil || plain {
		t.Errorf("ResourceIsCompressed(2) = %v, %v, want false, nil", plain, err)
	}
}
