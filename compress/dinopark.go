package compress

import (
	"encoding/binary"

	"github.com/retrodasm/resourcedasm/rderr"
)

// DecodeDinoParkLZSS decodes the DinoPark Tycoon LZSS variant: header
// 'LZSS' | compressed_size | decompressed_size | reserved, then an
// eight-step control-byte loop. Per bit, LSB first: 1 emits a literal
// byte, 0 reads a little-endian 16-bit word whose high 10 bits are a
// back-offset from the current output end and whose low 6 bits plus 3
// are the copy length.
func DecodeDinoParkLZSS(data []byte) ([]byte, error) {
	if len(data) < 16 || string(data[0:4]) != "LZSS" {
		return nil, rderr.New(rderr.KindBadMagic, "dinopark lzss: missing 'LZSS' signature")
	}
	decompSize := binary.BigEndian.Uint32(data[8:12])

	out := make([]byte, 0, decompSize)
	i := 16
	for uint32(len(out)) < decompSize {
		if i >= len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "dinopark lzss: truncated control byte")
		}
		control := data[i]
		i++
		for bit := 0; bit < 8 && uint32(len(out)) < decompSize; bit++ {
			if control&(1<<uint(bit)) != 0 {
				if i >= len(data) {
					return nil, rderr.New(rderr.KindUnexpectedEOF, "dinopark lzss: truncated literal")
				}
				out = append(out, data[i])
				i++
				continue
			}
			if i+1 >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "dinopark lzss: truncated back-reference")
			}
			word := uint16(data[i]) | uint16(data[i+1])<<8
			i += 2
			offset := int(word >> 6)
			length := int(word&0x3F) + 3
			if offset <= 0 || offset > len(out) {
				return nil, rderr.Newf(rderr.KindOutOfBounds, "dinopark lzss: back-offset %d exceeds output length %d", offset, len(out))
			}
			start := len(out) - offset
			for j := 0; j < length; j++ {
				out = append(out, out[start+j])
			}
		}
	}
	if uint32(len(out)) != decompSize {
		return nil, rderr.New(rderr.KindCorruptSize, "dinopark lzss: output size overshoot")
	}
	return out, nil
}

// DecodeDinoParkRLE decodes the DinoPark Tycoon RLE variant: header
// 'RLE ' | compressed_size | decompressed_size | reserved, then commands
// where cmd < 0x80 copies cmd+1 literal bytes and cmd >= 0x80 repeats the
// next byte (0x101 - cmd) times.
func DecodeDinoParkRLE(data []byte) ([]byte, error) {
	if len(data) < 16 || string(data[0:4]) != "RLE " {
		return nil, rderr.New(rderr.KindBadMagic, "dinopark rle: missing 'RLE ' signature")
	}
	decompSize := binary.BigEndian.Uint32(data[8:12])

	out := make([]byte, 0, decompSize)
	i := 16
	for uint32(len(out)) < decompSize {
		if i >= len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "dinopark rle: truncated command")
		}
		cmd := data[i]
		i++
		if cmd < 0x80 {
			n := int(cmd) + 1
			if i+n > len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "dinopark rle: truncated literal run")
			}
			out = append(out, data[i:i+n]...)
			i += n
		} else {
			if i >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "dinopark rle: truncated repeat byte")
			}
			v := data[i]
			i++
			count := 0x101 - int(cmd)
			for j := 0; j < count; j++ {
				out = append(out, v)
			}
		}
	}
	if uint32(len(out)) != decompSize {
		return nil, rderr.New(rderr.KindCorruptSize, "dinopark rle: output size overshoot")
	}
	return out, nil
}

// DecodeDinoParkData peeks the leading four bytes of data and routes to
// the LZSS decoder, the RLE decoder, or returns the buffer unchanged
// (identity) when neither magic matches.
func DecodeDinoParkData(data []byte) ([]byte, error) {
	if len(data) >= 4 {
		switch string(data[0:4]) {
		case "LZSS":
			return DecodeDinoParkLZSS(data)
		case "RLE ":
			return DecodeDinoParkRLE(data)
		}
	}
	return data, nil
}
