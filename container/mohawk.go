package container

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// mohawkMagic is the 'MHWK' signature every Mohawk archive opens with.
const mohawkMagic = "MHWK"

// OpenMohawk indexes a Mohawk archive: signature 'MHWK', then nested
// resource-directory -> type-table -> per-type resource-table ->
// file-table. A resource record names a file-table index which holds
// the offset and size of its bytes within the container. Mohawk
// resources carry no name and no compression flag; every multibyte
// integer is big-endian.
func OpenMohawk(data []byte, opts *Options) (*Container, error) {
	r := byteio.NewReader(data)

	magic, err := r.GetBytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != mohawkMagic {
		return nil, rderr.New(rderr.KindBadMagic, "mohawk: missing 'MHWK' signature")
	}
	if _, err := r.GetU32BE(); err != nil { // total file size minus 8, unused by the index
		return nil, err
	}

	rsrcTag, err := r.GetBytes(4)
	if err != nil {
		return nil, err
	}
	if string(rsrcTag) != "RSRC" {
		return nil, rderr.New(rderr.KindBadMagic, "mohawk: missing 'RSRC' directory tag")
	}
	if _, err := r.GetU16BE(); err != nil { // directory version
		return nil, err
	}
	if _, err := r.GetU32BE(); err != nil { // total file size again
		return nil, err
	}
	fileTableOffset, err := r.GetU32BE()
	if err != nil {
		return nil, err
	}
	if _, err := r.GetU32BE(); err != nil { // file table size
		return nil, err
	}
	typeTableOffset, err := r.GetU16BE()
	if err != nil {
		return nil, err
	}
	if _, err := r.GetU16BE(); err != nil { // resource name list size
		return nil, err
	}

	tt, err := r.Sub(int(typeTableOffset), len(data)-int(typeTableOffset))
	if err != nil {
		return nil, err
	}
	numTypes, err := tt.GetU16BE()
	if err != nil {
		return nil, err
	}

	type typeEntry struct {
		tag          string
		resTableOffs int
	}
	types := make([]typeEntry, 0, numTypes)
	for i := uint16(0); i < numTypes; i++ {
		tag, err := tt.GetBytes(4)
		if err != nil {
			return nil, err
		}
		resTableOffset, err := tt.GetU16BE()
		if err != nil {
			return nil, err
		}
		types = append(types, typeEntry{tag: string(tag), resTableOffs: int(resTableOffset)})
	}

	ft, err := r.Sub(int(fileTableOffset), len(data)-int(fileTableOffset))
	if err != nil {
		return nil, err
	}
	numFiles, err := ft.GetU16BE()
	if err != nil {
		return nil, err
	}
	type fileEntry struct {
		offset uint32
		size   uint32
	}
	files := make([]fileEntry, numFiles)
	for i := range files {
		offset, err := ft.GetU32BE()
		if err != nil {
			return nil, err
		}
		sizeAndFlags, err := ft.GetU32BE()
		if err != nil {
			return nil, err
		}
		files[i] = fileEntry{offset: offset, size: sizeAndFlags & 0x00FFFFFF}
		if _, err := ft.GetU16BE(); err != nil { // unknown flag word
			return nil, err
		}
	}

	c := newContainer(opts)

	for _, te := range types {
		rtReader, err := tt.Sub(te.resTableOffs, tt.Len()-te.resTableOffs)
		if err != nil {
			return nil, err
		}
		numEntries, err := rtReader.GetU16BE()
		if err != nil {
			return nil, err
		}
		for i := uint16(0); i < numEntries; i++ {
			id, err := rtReader.GetU16BE()
			if err != nil {
				return nil, err
			}
			fileTableIndex, err := rtReader.GetU16BE()
			if err != nil {
				return nil, err
			}
			if int(fileTableIndex) >= len(files) {
				return nil, rderr.Newf(rderr.KindOutOfBounds,
					"mohawk: resource %s/%d references file table index %d, have %d entries",
					te.tag, id, fileTableIndex, len(files))
			}
			fe := files[fileTableIndex]
			if uint64(fe.offset)+uint64(fe.size) > uint64(len(data)) {
				return nil, rderr.New(rderr.KindCorruptSize, "mohawk: file table entry extends past end of file")
			}
			bytes := data[fe.offset : fe.offset+fe.size]
			c.add(Resource{Type: te.tag, ID: int16(id), Bytes: bytes})
		}
	}

	return c, nil
}
