package container

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// OpenResourceFork indexes a classic Macintosh resource fork: a 128-byte
// fixed prelude (data offset/size, map offset/size as four big-endian
// u32s), then a map holding a type list and, per type, a reference list
// of (id, name-offset, attrs+data-offset) triples. Names live in a
// trailing name list; each resource's bytes live at its data offset
// inside the data segment, preceded by a 32-bit big-endian length.
func OpenResourceFork(data []byte, opts *Options) (*Container, error) {
	r := byteio.NewReader(data)

	dataOffset, err := r.GetU32BE()
	if err != nil {
		return nil, err
	}
	mapOffset, err := r.GetU32BE()
	if err != nil {
		return nil, err
	}
	dataSize, err := r.GetU32BE()
	if err != nil {
		return nil, err
	}
	_, err = r.GetU32BE() // map size, unused: the map's own offsets are self-describing.
	if err != nil {
		return nil, err
	}
	if uint64(dataOffset)+uint64(dataSize) > uint64(len(data)) {
		return nil, rderr.New(rderr.KindCorruptSize, "resource fork data segment extends past end of file")
	}

	mr, err := r.Sub(int(mapOffset), len(data)-int(mapOffset))
	if err != nil {
		return nil, err
	}
	if _, err := mr.GetBytes(24); err != nil { // reserved copy of the header + handles + next-map fields
		return nil, err
	}
	if _, err := mr.GetBytes(2); err != nil { // file attributes
		return nil, err
	}
	typeListOffset, err := mr.GetU16BE()
	if err != nil {
		return nil, err
	}
	nameListOffset, err := mr.GetU16BE()
	if err != nil {
		return nil, err
	}

	tr, err := mr.Sub(int(typeListOffset), mr.Len()-int(typeListOffset))
	if err != nil {
		return nil, err
	}
	numTypesMinus1, err := tr.GetI16BE()
	if err != nil {
		return nil, err
	}
	numTypes := int(numTypesMinus1) + 1

	type typeEntry struct {
		tag         string
		count       int
		refListOffs int
	}
	types := make([]typeEntry, 0, numTypes)
	for i := 0; i < numTypes; i++ {
		tagBytes, err := tr.GetBytes(4)
		if err != nil {
			return nil, err
		}
		countMinus1, err := tr.GetI16BE()
		if err != nil {
			return nil, err
		}
		refOffset, err := tr.GetU16BE()
		if err != nil {
			return nil, err
		}
		types = append(types, typeEntry{
			tag:         string(tagBytes),
			count:       int(countMinus1) + 1,
			refListOffs: int(refOffset),
		})
	}

	c := newContainer(opts)

	for _, te := range types {
		refReader, err := tr.Sub(te.refListOffs, tr.Len()-te.refListOffs)
		if err != nil {
			return nil, err
		}
		for i := 0; i < te.count; i++ {
			id, err := refReader.GetI16BE()
			if err != nil {
				return nil, err
			}
			nameOffset, err := refReader.GetI16BE()
			if err != nil {
				return nil, err
			}
			attrsAndDataOffset, err := refReader.GetU32BE()
			if err != nil {
				return nil, err
			}
			if _, err := refReader.GetBytes(4); err != nil { // reserved handle field
				return nil, err
			}

			attrs := uint8(attrsAndDataOffset >> 24)
			resDataOffset := int(attrsAndDataOffset & 0x00FFFFFF)

			name := ""
			if nameOffset != -1 {
				nr, err := mr.Sub(int(nameListOffset)+int(nameOffset), mr.Len()-int(nameListOffset)-int(nameOffset))
				if err != nil {
					return nil, err
				}
				nameLen, err := nr.GetU8()
				if err != nil {
					return nil, err
				}
				nameBytes, err := nr.GetBytes(int(nameLen))
				if err != nil {
					return nil, err
				}
				// Resource-fork names are Pascal strings in Mac OS Roman,
				// not UTF-8; decode so callers get printable Go strings.
				decoded, decErr := charmap.Macintosh.NewDecoder().Bytes(nameBytes)
				if decErr != nil {
					name = string(nameBytes)
				} else {
					name = string(decoded)
				}
			}

			dr, err := r.Sub(int(dataOffset)+resDataOffset, len(data)-int(dataOffset)-resDataOffset)
			if err != nil {
				return nil, err
			}
			size, err := dr.GetU32BE()
			if err != nil {
				return nil, err
			}
			bytes, err := dr.GetBytes(int(size))
			if err != nil {
				return nil, err
			}

			c.add(Resource{Type: te.tag, ID: id, Name: name, Attrs: attrs, Bytes: bytes})
		}
	}

	return c, nil
}
