package compress

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// PPSSVersion selects between the Flashback PPSS opcode grouping and the
// Presage-library one: both use an RGGCCCCC command byte (R = advance to
// the next output row, GG = opcode group, CCCCC = count, extended when
// the field reads as empty), but the two libraries assign different
// meanings to the four groups and different count-extension rules.
type PPSSVersion int

const (
	// PPSSVersion1 is the Flashback PPSS opcode grouping.
	PPSSVersion1 PPSSVersion = iota
	// PPSSVersion2 is the Presage-library opcode grouping (Prince of
	// Persia and its engine-mates).
	PPSSVersion2
)

type loopFrame struct {
	iterationsRemaining int
	jumpOffset          int
}

// DecodePPSS decodes a Flashback/Presage sprite opcode stream into a
// rowWidth*rowCount grid of palette indices, row-major, with -1 marking
// a transparent (unwritten) pixel. x/y position is driven explicitly by
// the R bit and literal/skip/run opcodes rather than inferred from byte
// counts, matching both libraries' own cursor-based decoders.
func DecodePPSS(data []byte, version PPSSVersion, rowWidth, rowCount int) ([]int, error) {
	r := byteio.NewReader(data)
	out := make([]int, rowWidth*rowCount)
	for i := range out {
		out[i] = -1
	}
	x, y := 0, 0
	put := func(v int) {
		if x >= 0 && x < rowWidth && y >= 0 && y < rowCount {
			out[y*rowWidth+x] = v
		}
		x++
	}

	var loopStack []loopFrame
	stop := false

	if version == PPSSVersion1 {
		for !stop {
			if y >= rowCount {
				break
			}
			cmd, err := r.GetU8()
			if err != nil {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "ppss: truncated opcode stream")
			}
			if cmd&0x80 != 0 {
				y++
				x = 0
			}
			count := int(cmd & 0x1F)
			if count == 0 {
				c16, err := r.GetU16BE()
				if err != nil {
					return nil, err
				}
				count = int(c16)
			}
			switch cmd & 0x60 {
			case 0x00: // loop control
				opEndOffset := r.Where()
				switch {
				case count != 1:
					loopStack = append(loopStack, loopFrame{iterationsRemaining: count - 1, jumpOffset: opEndOffset})
				case len(loopStack) == 0:
					stop = true
				default:
					top := &loopStack[len(loopStack)-1]
					if top.iterationsRemaining == 0 {
						loopStack = loopStack[:len(loopStack)-1]
					} else {
						top.iterationsRemaining--
						if err := r.Seek(top.jumpOffset); err != nil {
							return nil, err
						}
					}
				}
			case 0x20: // skip (transparent)
				for j := 0; j < count; j++ {
					put(-1)
				}
			case 0x40: // stop, or write count bytes of one color
				if count == 1 {
					stop = true
					break
				}
				v, err := r.GetU8()
				if err != nil {
					return nil, err
				}
				for j := 0; j < count; j++ {
					put(int(v))
				}
			default: // 0x60: write count literal bytes
				for j := 0; j < count; j++ {
					v, err := r.GetU8()
					if err != nil {
						return nil, err
					}
					put(int(v))
				}
			}
		}
		return out, nil
	}

	// PPSSVersion2: Presage-library grouping. Count is pre-incremented
	// (the "write N times" opcodes all act on count+1), and the extended
	// count sentinel is 0x1F (one more byte, offset by 0x20) rather than
	// "count field reads as zero".
	for !stop {
		if y >= rowCount {
			break
		}
		cmd, err := r.GetU8()
		if err != nil {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "ppss: truncated opcode stream")
		}
		if cmd&0x80 != 0 {
			y++
			x = 0
		}
		count := int(cmd & 0x1F)
		if count == 0x1F {
			ext, err := r.GetU8()
			if err != nil {
				return nil, err
			}
			count = int(ext) + 0x20
		} else {
			count++
		}
		switch cmd & 0x60 {
		case 0x00: // stop, or write count bytes of one color
			if count == 1 {
				stop = true
				break
			}
			v, err := r.GetU8()
			if err != nil {
				return nil, err
			}
			for j := 0; j < count; j++ {
				put(int(v))
			}
		case 0x20: // write count literal bytes
			for j := 0; j < count; j++ {
				v, err := r.GetU8()
				if err != nil {
					return nil, err
				}
				put(int(v))
			}
		case 0x40: // skip (transparent)
			for j := 0; j < count; j++ {
				put(-1)
			}
		default: // 0x60: loop control
			count--
			if count != 0 {
				loopStack = append(loopStack, loopFrame{iterationsRemaining: count, jumpOffset: r.Where()})
				continue
			}
			if len(loopStack) == 0 {
				continue
			}
			top := &loopStack[len(loopStack)-1]
			if top.iterationsRemaining == 0 {
				loopStack = loopStack[:len(loopStack)-1]
			} else {
				top.iterationsRemaining--
				if err := r.Seek(top.jumpOffset); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}
