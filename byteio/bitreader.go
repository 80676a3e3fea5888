package byteio

import "github.com/retrodasm/resourcedasm/rderr"

// BitReader extracts MSB-first bit fields of 1 to 32 bits from a byte
// slice, used by the bit-packed sprite codecs (DC2 and PPic).
type BitReader struct {
	data    []byte
	bytePos int
	bitBuf  uint64
	bitCnt  uint
}

// NewBitReader wraps buf for MSB-first bit extraction.
func NewBitReader(buf []byte) *BitReader {
	return &BitReader{data: buf}
}

// fill tops the bit buffer up with whole bytes until it holds at least n
// bits or the input is exhausted.
func (b *BitReader) fill(n uint) {
	for b.bitCnt < n && b.bytePos < len(b.data) {
		b.bitBuf = b.bitBuf<<8 | uint64(b.data[b.bytePos])
		b.bytePos++
		b.bitCnt += 8
	}
}

// GetBits reads n (1..32) bits MSB-first.
func (b *BitReader) GetBits(n uint) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 32 {
		return 0, rderr.Newf(rderr.KindOutOfBounds, "bit width %d exceeds 32", n)
	}
	b.fill(n)
	if b.bitCnt < n {
		return 0, rderr.Newf(rderr.KindUnexpectedEOF, "need %d bits, have %d", n, b.bitCnt)
	}
	shift := b.bitCnt - n
	v := uint32((b.bitBuf >> shift) & ((uint64(1) << n) - 1))
	b.bitCnt -= n
	b.bitBuf &= (uint64(1) << b.bitCnt) - 1
	return v, nil
}

// GetBit reads a single bit.
func (b *BitReader) GetBit() (uint32, error) {
	return b.GetBits(1)
}

// DecodeByte is the byte-aligned entry point: it discards any partial bits
// still buffered and reads the next whole byte from the underlying stream.
func (b *BitReader) DecodeByte() (byte, error) {
	b.bitBuf = 0
	b.bitCnt = 0
	if b.bytePos >= len(b.data) {
		return 0, rderr.New(rderr.KindUnexpectedEOF, "decode byte past end of stream")
	}
	v := b.data[b.bytePos]
	b.bytePos++
	return v, nil
}

// Remaining reports whether any unread bits (buffered or not yet loaded)
// remain.
func (b *BitReader) Remaining() bool {
	return b.bitCnt > 0 || b.bytePos < len(b.data)
}
