package container

import (
	"encoding/binary"

	"github.com/retrodasm/resourcedasm/rderr"
)

// OpenDarkCastle indexes a Dark Castle data file: a tiny header of
// {unknown_u32, resource_count_u16_be, unk_u16[2]} followed by
// resource_count entries of {offset_u32_be, size_u32_be, type_u32_le,
// id_i16_be}. The type field is the one little-endian multibyte field
// in an otherwise big-endian format, matching the original data file's
// layout.
func OpenDarkCastle(data []byte, opts *Options) (*Container, error) {
	if len(data) < 10 {
		return nil, rderr.New(rderr.KindUnexpectedEOF, "dark castle: header truncated")
	}
	count := binary.BigEndian.Uint16(data[4:6])

	const headerSize = 10
	const entrySize = 14
	need := headerSize + int(count)*entrySize
	if need > len(data) {
		return nil, rderr.New(rderr.KindCorruptSize, "dark castle: entry table extends past end of file")
	}

	c := newContainer(opts)
	for i := 0; i < int(count); i++ {
		base := headerSize + i*entrySize
		offset := binary.BigEndian.Uint32(data[base : base+4])
		size := binary.BigEndian.Uint32(data[base+4 : base+8])
		typeVal := binary.LittleEndian.Uint32(data[base+8 : base+12])
		id := int16(binary.BigEndian.Uint16(data[base+12 : base+14]))

		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return nil, rderr.New(rderr.KindCorruptSize, "dark castle: resource entry extends past end of file")
		}

		typeTag := string([]byte{
			byte(typeVal), byte(typeVal >> 8), byte(typeVal >> 16), byte(typeVal >> 24),
		})
		c.add(Resource{Type: typeTag, ID: id, Bytes: data[offset : offset+size]})
	}

	return c, nil
}
