package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/retrodasm/resourcedasm/rderr"
)

// buildResourceFork assembles a minimal but structurally complete
// resource fork with a single "TEST" type holding one named resource.
func buildResourceFork(t *testing.T, resBytes []byte, resName string) []byte {
	t.Helper()

	dataSeg := new(bytes.Buffer)
	binary.Write(dataSeg, binary.BigEndian, uint32(len(resBytes)))
	dataSeg.Write(resBytes)

	const mapHeaderSize = 30
	typeListOffset := mapHeaderSize
	typeList := new(bytes.Buffer)
	binary.Write(typeList, binary.BigEndian, uint16(0)) // numTypesMinus1
	typeList.WriteString("TEST")
	binary.Write(typeList, binary.BigEndian, uint16(0))  // countMinus1
	binary.Write(typeList, binary.BigEndian, uint16(10)) // refListOffset, relative to type list start

	refList := new(bytes.Buffer)
	binary.Write(refList, binary.BigEndian, int16(1))  // id
	binary.Write(refList, binary.BigEndian, int16(0))  // nameOffset
	binary.Write(refList, binary.BigEndian, uint32(0)) // attrs(0) << 24 | dataOffset(0)
	binary.Write(refList, binary.BigEndian, uint32(0)) // reserved handle

	nameList := new(bytes.Buffer)
	nameList.WriteByte(byte(len(resName)))
	nameList.WriteString(resName)

	nameListOffset := typeListOffset + typeList.Len() + refList.Len()

	mapBuf := new(bytes.Buffer)
	mapBuf.Write(make([]byte, 24)) // reserved header/handle/next-map fields
	binary.Write(mapBuf, binary.BigEndian, uint16(0))                  // file attributes
	binary.Write(mapBuf, binary.BigEndian, uint16(typeListOffset))     // typeListOffset
	binary.Write(mapBuf, binary.BigEndian, uint16(nameListOffset))     // nameListOffset
	mapBuf.Write(typeList.Bytes())
	mapBuf.Write(refList.Bytes())
	mapBuf.Write(nameList.Bytes())

	dataOffset := uint32(16)
	mapOffset := dataOffset + uint32(dataSeg.Len())

	out := new(bytes.Buffer)
	binary.Write(out, binary.BigEndian, dataOffset)
	binary.Write(out, binary.BigEndian, mapOffset)
	binary.Write(out, binary.BigEndian, uint32(dataSeg.Len()))
	binary.Write(out, binary.BigEndian, uint32(mapBuf.Len()))
	out.Write(dataSeg.Bytes())
	out.Write(mapBuf.Bytes())

	return out.Bytes()
}

func TestOpenResourceForkIndexesNamedResource(t *testing.T) {
	data := buildResourceFork(t, []byte("HELLO"), "TEST")
	c, err := OpenResourceFork(data, nil)
	if err != nil {
		t.Fatalf("OpenResourceFork() failed: %v", err)
	}

	if !c.ResourceExists("TEST", 1) {
		t.Fatalf("ResourceExists(TEST,1) = false, want true")
	}

	got, err := c.GetResourceData("TEST", 1, false)
	if err != nil {
		t.Fatalf("GetResourceData() failed: %v", err)
	}
	if string(got) != "HELLO" {
		t.Errorf("GetResourceData() = %q, want %q", got, "HELLO")
	}

	name, err := c.GetResourceName("TEST", 1)
	if err != nil {
		t.Fatalf("GetResourceName() failed: %v", err)
	}
	if name != "TEST" {
		t.Errorf("GetResourceName() = %q, want %q", name, "TEST")
	}

	types := c.AllTypes()
	if len(types) != 1 || types[0] != "TEST" {
		t.Errorf("AllTypes() = %v, want [TEST]", types)
	}
}

func TestGetResourceDataMissing(t *testing.T) {
	data := buildResourceFork(t, []byte("HELLO"), "TEST")
	c, err := OpenResourceFork(data, nil)
	if err != nil {
		t.Fatalf("OpenResourceFork() failed: %v", err)
	}
	_, err = c.GetResourceData("ABCD", 99, false)
	if !rderr.Is(err, rderr.KindMissingResource) {
		t.Errorf("GetResourceData(missing) err = %v, want KindMissingResource", err)
	}
}

func TestOpenDispatchesOnMagic(t *testing.T) {
	data := buildResourceFork(t, []byte("HI"), "X")
	c, err := Open(data, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !c.ResourceExists("TEST", 1) {
		t.Errorf("Open() did not dispatch to the resource-fork reader")
	}
}
