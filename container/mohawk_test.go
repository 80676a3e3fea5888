package container

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildMohawk assembles a minimal Mohawk archive holding a single
// resource of the given type and id. The type-table and file-table
// offsets are absolute from the start of the file; each type's
// resource-table offset is relative to the type table.
func buildMohawk(t *testing.T, typeTag string, id uint16, payload []byte) []byte {
	t.Helper()

	const mhwkHeaderLen = 8 // 'MHWK' + u32 total-size field
	const dirFixedLen = 4 + 2 + 4 + 4 + 4 + 2 + 2 // 'RSRC' + version + filesize + fileTableOffset + fileTableSize + typeTableOffset + nameListSize

	typeTableOffset := mhwkHeaderLen + dirFixedLen
	const typeTableLen = 2 + 6 // numTypes(2) + one type entry (tag 4 + resTableOffset 2)
	resTableOffset := typeTableOffset + typeTableLen
	const resTableLen = 2 + 4 // numEntries(2) + one resource entry (id 2 + fileTableIndex 2)
	fileTableOffset := resTableOffset + resTableLen
	const fileTableLen = 2 + 10 // numFiles(2) + one file entry (offset 4 + size+flags 4 + unknown 2)
	const fileDataOffset = 200

	out := new(bytes.Buffer)
	out.WriteString("MHWK")
	binary.Write(out, binary.BigEndian, uint32(0)) // total size, unused by the reader

	out.WriteString("RSRC")
	binary.Write(out, binary.BigEndian, uint16(1))                    // directory version
	binary.Write(out, binary.BigEndian, uint32(0))                    // total file size, unused
	binary.Write(out, binary.BigEndian, uint32(fileTableOffset))
	binary.Write(out, binary.BigEndian, uint32(fileTableLen))
	binary.Write(out, binary.BigEndian, uint16(typeTableOffset))
	binary.Write(out, binary.BigEndian, uint16(0)) // name list size

	binary.Write(out, binary.BigEndian, uint16(1)) // numTypes
	out.WriteString(typeTag)
	binary.Write(out, binary.BigEndian, uint16(typeTableLen)) // resTableOffset, relative to the type table

	binary.Write(out, binary.BigEndian, uint16(1)) // numEntries
	binary.Write(out, binary.BigEndian, id)
	binary.Write(out, binary.BigEndian, uint16(0)) // fileTableIndex

	binary.Write(out, binary.BigEndian, uint16(1)) // numFiles
	binary.Write(out, binary.BigEndian, uint32(fileDataOffset))
	binary.Write(out, binary.BigEndian, uint32(len(payload)))
	binary.Write(out, binary.BigEndian, uint16(0)) // unknown flag word

	for out.Len() < fileDataOffset {
		out.WriteByte(0)
	}
	out.Write(payload)

	return out.Bytes()
}

func TestOpenMohawkIndexesResource(t *testing.T) {
	data := buildMohawk(t, "tBMP", 100, []byte("pixels"))
	c, err := OpenMohawk(data, nil)
	if err != nil {
		t.Fatalf("OpenMohawk() failed: %v", err)
	}
	if !c.ResourceExists("tBMP", 100) {
		t.Fatalf("ResourceExists(tBMP,100) = false, want true")
	}
	got, err := c.GetResourceData("tBMP", 100, false)
	if err != nil {
		t.Fatalf("GetResourceData() failed: %v", err)
	}
	if string(got) != "pixels" {
		t.Errorf("GetResourceData() = %q, want %q", got, "pixels")
	}
}

func TestOpenDispatchesToMohawkOnMagic(t *testing.T) {
	data := buildMohawk(t, "tBMP", 1, []byte("x"))
	c, err := Open(data, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !c.ResourceExists("tBMP", 1) {
		t.Errorf("Open() did not dispatch to the Mohawk reader")
	}
}
