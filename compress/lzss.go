package compress

import (
	"encoding/binary"

	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// DecodePresageLZSS decodes the Presage sprite-engine LZSS variant. The
// decompressed size is a big-endian u32 read from the front of data
// unless the caller already knows it (sizeHint >= 0). Each control byte
// is read LSB-first, one bit per step: 1 selects a literal byte, 0 reads
// a big-endian 16-bit word whose low 12 bits plus 1 are a back-offset
// and whose high 4 bits plus 3 are the copy count.
func DecodePresageLZSS(data []byte, sizeHint int) ([]byte, error) {
	i := 0
	size := sizeHint
	if size < 0 {
		if len(data) < 4 {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "presage lzss: missing size header")
		}
		size = int(binary.BigEndian.Uint32(data[0:4]))
		i = 4
	}

	out := make([]byte, 0, size)
	for len(out) < size {
		if i >= len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "presage lzss: truncated control byte")
		}
		control := data[i]
		i++
		for bit := 0; bit < 8 && len(out) < size; bit++ {
			if control&(1<<uint(bit)) != 0 {
				if i >= len(data) {
					return nil, rderr.New(rderr.KindUnexpectedEOF, "presage lzss: truncated literal")
				}
				out = append(out, data[i])
				i++
				continue
			}
			if i+1 >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "presage lzss: truncated back-reference")
			}
			word := uint16(data[i])<<8 | uint16(data[i+1])
			i += 2
			offset := int(word&0xFFF) + 1
			count := int(word>>12) + 3
			if offset > len(out) {
				return nil, rderr.Newf(rderr.KindOutOfBounds, "presage lzss: back-offset %d exceeds output length %d", offset, len(out))
			}
			start := len(out) - offset
			for j := 0; j < count; j++ {
				out = append(out, out[start+j])
			}
		}
	}
	return out, nil
}

// DecodeSoundMusicSysLZSS decodes the SoundMusicSys LZSS variant. There
// is no explicit declared size: decoding continues until the control-byte
// stream is exhausted. Control bits are read LSB-first: 1 emits a
// literal; 0 reads a big-endian 16-bit word and copies
// ((word>>12)&0xF)+3 bytes from output.len() - (4096 - (word & 0xFFF)).
func DecodeSoundMusicSysLZSS(data []byte) ([]byte, error) {
	r := byteio.NewReader(data)
	var out []byte

	for !r.Eof() {
		control, err := r.GetU8()
		if err != nil {
			break
		}
		for bit := 0; bit < 8; bit++ {
			if r.Eof() {
				return out, nil
			}
			if control&(1<<uint(bit)) != 0 {
				b, err := r.GetU8()
				if err != nil {
					return out, nil
				}
				out = append(out, b)
				continue
			}
			hi, err := r.GetU8()
			if err != nil {
				return out, nil
			}
			lo, err := r.GetU8()
			if err != nil {
				return out, nil
			}
			word := uint16(hi)<<8 | uint16(lo)
			count := int((word>>12)&0xF) + 3
			backDistance := 4096 - int(word&0xFFF)
			start := len(out) - backDistance
			if start < 0 {
				return nil, rderr.Newf(rderr.KindOutOfBounds,
					"soundmusicsys lzss: back-distance %d exceeds output length %d", backDistance, len(out))
			}
			for j := 0; j < count; j++ {
				out = append(out, out[start+j])
			}
		}
	}
	return out, nil
}
