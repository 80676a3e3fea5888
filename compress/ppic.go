package compress

import "github.com/retrodasm/resourcedasm/rderr"

// DecodePPicBlock4x4 decodes a PPic row-major sequence of 4-row block
// commands into width*height palette indices. Four rolling write buffers
// hold rows 0..3 of the current block-row; they flush to out after each
// block-row completes. When height isn't a multiple of 4, the final
// band is truncated from the bottom.
func DecodePPicBlock4x4(r opReader, width, height int) ([]int, error) {
	out := make([]int, width*height)
	blockCols := (width + 3) / 4
	blockRows := (height + 3) / 4

	var prevBlocks [][4][4]int
	curRow := make([][4][4]int, blockCols)

	flushRow := func(blockRow int) error {
		for by := 0; by < 4; by++ {
			y := blockRow*4 + by
			if y >= height {
				break
			}
			for bc := 0; bc < blockCols; bc++ {
				for bx := 0; bx < 4; bx++ {
					x := bc*4 + bx
					if x >= width {
						break
					}
					out[y*width+x] = curRow[bc][by][bx]
				}
			}
		}
		return nil
	}

	for blockRow := 0; blockRow < blockRows; blockRow++ {
		for bc := 0; bc < blockCols; bc++ {
			block, err := decodePPicBlock(r, prevRowBlock(prevBlocks, bc))
			if err != nil {
				return nil, err
			}
			curRow[bc] = block
		}
		if err := flushRow(blockRow); err != nil {
			return nil, err
		}
		prevBlocks = append([][4][4]int{}, curRow...)
	}
	return out, nil
}

func prevRowBlock(prevBlocks [][4][4]int, col int) [4][4]int {
	if col < len(prevBlocks) {
		return prevBlocks[col]
	}
	return [4][4]int{}
}

// opReader is the minimal nibble/byte/bit cursor PPic blocks are read
// from; it is satisfied directly by *byteio.BitReader.
type opReader interface {
	GetBits(n uint) (uint32, error)
}

func decodePPicBlock(r opReader, prevBlock [4][4]int) ([4][4]int, error) {
	var block [4][4]int
	opHi, err := r.GetBits(4)
	if err != nil {
		return block, err
	}

	switch opHi {
	case 0x0, 0x1:
		// Run of a single nibble value across the whole 4x4 block.
		v, err := r.GetBits(4)
		if err != nil {
			return block, err
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				block[y][x] = int(v)
			}
		}
	case 0x2, 0x3:
		// Repeat of the previous block at this column.
		block = prevBlock
	case 0x4, 0x5:
		// 2-color block via a 16-bit selector; 0x5 reuses the previous
		// block's two colors instead of reading new ones.
		var c0, c1 uint32
		if opHi == 0x4 {
			c0, err = r.GetBits(4)
			if err != nil {
				return block, err
			}
			c1, err = r.GetBits(4)
			if err != nil {
				return block, err
			}
		} else {
			c0, c1 = uint32(prevBlock[0][0]), uint32(prevBlock[0][1])
		}
		sel, err := r.GetBits(16)
		if err != nil {
			return block, err
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				bit := (sel >> uint(15-(y*4+x))) & 1
				if bit == 0 {
					block[y][x] = int(c0)
				} else {
					block[y][x] = int(c1)
				}
			}
		}
	case 0x6, 0x7:
		// 4-color block via a 32-bit selector (2 bits per pixel).
		var colors [4]uint32
		for k := range colors {
			colors[k], err = r.GetBits(4)
			if err != nil {
				return block, err
			}
		}
		sel, err := r.GetBits(32)
		if err != nil {
			return block, err
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				shift := uint(30 - (y*4+x)*2)
				idx := (sel >> shift) & 3
				block[y][x] = int(colors[idx])
			}
		}
	case 0xA, 0xB:
		// Uncompressed block: 16 literal nibbles.
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				v, err := r.GetBits(4)
				if err != nil {
					return block, err
				}
				block[y][x] = int(v)
			}
		}
	default:
		return block, rderr.Newf(rderr.KindBadOpcode, "ppic: invalid block opcode %#x", opHi)
	}
	return block, nil
}
