package compress

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// DC2Header is the fixed preamble of a Dark Castle DC2 resource.
type DC2Header struct {
	Height, Width int16
	BitsPerPixel  int
	GenerateMask  bool
}

// ChunkCountBits returns the smallest value between 4 and 7 such that
// 2^chunk_count_bits >= width, the width-dependent opcode count field
// width DC2 derives per image.
func (h DC2Header) ChunkCountBits() int {
	for bits := 4; bits < 7; bits++ {
		if (1 << uint(bits)) >= int(h.Width) {
			return bits
		}
	}
	return 7
}

// ReadDC2Header reads {height, width: i16 BE, bpp_minus_one: u8, unk[2],
// generate_mask: u8}.
func ReadDC2Header(r *byteio.Reader) (DC2Header, error) {
	height, err := r.GetI16BE()
	if err != nil {
		return DC2Header{}, err
	}
	width, err := r.GetI16BE()
	if err != nil {
		return DC2Header{}, err
	}
	bppMinus1, err := r.GetU8()
	if err != nil {
		return DC2Header{}, err
	}
	if _, err := r.GetBytes(2); err != nil {
		return DC2Header{}, err
	}
	genMask, err := r.GetU8()
	if err != nil {
		return DC2Header{}, err
	}
	return DC2Header{Height: height, Width: width, BitsPerPixel: int(bppMinus1) + 1, GenerateMask: genMask != 0}, nil
}

// DecodeDC2Pixels decodes the DC2 opcode-dispatched pixel stream into a
// slice of palette indices, width*height long. Index 0 is black and the
// last palette index is the transparent sentinel; callers composite those
// against a palette.
func DecodeDC2Pixels(br *byteio.BitReader, hdr DC2Header) ([]int, error) {
	total := int(hdr.Width) * int(hdr.Height)
	chunkBits := uint(hdr.ChunkCountBits())
	out := make([]int, 0, total)

	readColor := func() (int, error) {
		v, err := br.GetBits(uint(hdr.BitsPerPixel))
		return int(v), err
	}

	for len(out) < total {
		op, err := br.GetBits(3)
		if err != nil {
			return nil, err
		}
		switch op {
		case 0:
			count, err := br.GetBits(chunkBits)
			if err != nil {
				return nil, err
			}
			for j := uint32(0); j <= count; j++ {
				out = append(out, 0)
			}
		case 1:
			count, err := br.GetBits(chunkBits)
			if err != nil {
				return nil, err
			}
			c, err := readColor()
			if err != nil {
				return nil, err
			}
			for j := uint32(0); j <= count; j++ {
				out = append(out, c)
			}
		case 2:
			count, err := br.GetBits(chunkBits)
			if err != nil {
				return nil, err
			}
			c0, err := readColor()
			if err != nil {
				return nil, err
			}
			c1, err := readColor()
			if err != nil {
				return nil, err
			}
			out = append(out, c0)
			cur := c0
			for j := uint32(0); j < count; j++ {
				sel, err := br.GetBits(1)
				if err != nil {
					return nil, err
				}
				if sel == 0 {
					cur = c0
				} else {
					cur = c1
				}
				out = append(out, cur)
			}
		case 3:
			count, err := br.GetBits(chunkBits)
			if err != nil {
				return nil, err
			}
			var colors [4]int
			for k := range colors {
				colors[k], err = readColor()
				if err != nil {
					return nil, err
				}
			}
			out = append(out, colors[0])
			for j := uint32(0); j < count; j++ {
				sel, err := br.GetBits(2)
				if err != nil {
					return nil, err
				}
				out = append(out, colors[sel])
			}
		case 4, 5, 6:
			n := int(op-4) + 1
			for j := 0; j < n; j++ {
				c, err := readColor()
				if err != nil {
					return nil, err
				}
				out = append(out, c)
			}
		case 7:
			count, err := br.GetBits(chunkBits)
			if err != nil {
				return nil, err
			}
			for j := uint32(0); j <= count; j++ {
				c, err := readColor()
				if err != nil {
					return nil, err
				}
				out = append(out, c)
			}
		}
		if len(out) > total {
			return nil, rderr.New(rderr.KindCorruptSize, "dc2: pixel stream overshoot past width*height")
		}
	}
	return out, nil
}
