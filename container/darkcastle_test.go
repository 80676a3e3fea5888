package container

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildDarkCastle(t *testing.T, entries []struct {
	typeTag string
	id      int16
	bytes   []byte
}) []byte {
	t.Helper()

	const headerSize = 10
	const entrySize = 14
	dataStart := headerSize + len(entries)*entrySize

	out := new(bytes.Buffer)
	binary.Write(out, binary.BigEndian, uint32(0))             // unknown
	binary.Write(out, binary.BigEndian, uint16(len(entries))) // resource count
	binary.Write(out, binary.BigEndian, uint16(0))
	binary.Write(out, binary.BigEndian, uint16(0))

	offset := dataStart
	for _, e := range entries {
		binary.Write(out, binary.BigEndian, uint32(offset))
		binary.Write(out, binary.BigEndian, uint32(len(e.bytes)))
		var typeVal uint32
		typeVal = uint32(e.typeTag[0]) | uint32(e.typeTag[1])<<8 | uint32(e.typeTag[2])<<16 | uint32(e.typeTag[3])<<24
		binary.Write(out, binary.LittleEndian, typeVal)
		binary.Write(out, binary.BigEndian, e.id)
		offset += len(e.bytes)
	}
	for _, e := range entries {
		out.Write(e.bytes)
	}

	return out.Bytes()
}

func TestOpenDarkCastleIndexesResources(t *testing.T) {
	entries := []struct {
		typeTag string
		id      int16
		bytes   []byte
	}{
		{typeTag: "DC2 ", id: 5, bytes: []byte{1, 2, 3, 4}},
		{typeTag: "PSCR", id: 6, bytes: []byte{9, 9}},
	}
	data := buildDarkCastle(t, entries)

	c, err := OpenDarkCastle(data, nil)
	if err != nil {
		t.Fatalf("OpenDarkCastle() failed: %v", err)
	}

	got, err := c.GetResourceData("DC2 ", 5, false)
	if err != nil {
		t.Fatalf("GetResourceData(DC2,5) failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("GetResourceData(DC2,5) = %v, want %v", got, []byte{1, 2, 3, 4})
	}

	got2, err := c.GetResourceData("PSCR", 6, false)
	if err != nil {
		t.Fatalf("GetResourceData(PSCR,6) failed: %v", err)
	}
	if !bytes.Equal(got2, []byte{9, 9}) {
		t.Errorf("GetResourceData(PSCR,6) = %v, want %v", got2, []byte{9, 9})
	}
}

func TestOpenDispatchesToDarkCastleHeuristic(t *testing.T) {
	entries := []struct {
		typeTag string
		id      int16
		bytes   []byte
	}{
		{typeTag: "DC2 ", id: 1, bytes: []byte{0xAB}},
	}
	data := buildDarkCastle(t, entries)

	c, err := Open(data, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !c.ResourceExists("DC2 ", 1) {
		t.Errorf("Open() did not dispatch to the Dark Castle reader")
	}
}
