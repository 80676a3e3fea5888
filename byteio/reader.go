// Package byteio provides the sequential, position-tracked readers every
// container and codec package in resourcedasm builds on: a byte-granular
// Reader with independent endianness per call, and a BitReader for the
// MSB-first bit-packed formats (DC2, PPic).
package byteio

import (
	"github.com/retrodasm/resourcedasm/rderr"
)

// Reader is an immutable, position-tracked view over a byte slice. It never
// copies the underlying storage; Sub windows share it with their parent.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps buf for sequential reading starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{data: buf}
}

// Len returns the total size of the underlying buffer.
func (r *Reader) Len() int { return len(r.data) }

// Where returns the current read offset.
func (r *Reader) Where() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Eof reports whether the reader is positioned at or past the end.
func (r *Reader) Eof() bool { return r.pos >= len(r.data) }

// Seek repositions the reader to an absolute offset.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return rderr.Newf(rderr.KindOutOfBounds, "seek to %d outside buffer of length %d", pos, len(r.data))
	}
	r.pos = pos
	return nil
}

// Skip advances the reader by n bytes.
func (r *Reader) Skip(n int) error {
	return r.Seek(r.pos + n)
}

func (r *Reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return rderr.Newf(rderr.KindUnexpectedEOF, "need %d bytes at offset %d, have %d", n, r.pos, r.Remaining())
	}
	return nil
}

// PeekU8 reads a single byte at an absolute offset without moving the
// cursor.
func (r *Reader) PeekU8(at int) (byte, error) {
	if at < 0 || at >= len(r.data) {
		return 0, rderr.Newf(rderr.KindUnexpectedEOF, "peek at %d outside buffer of length %d", at, len(r.data))
	}
	return r.data[at], nil
}

// GetU8 reads and consumes one byte.
func (r *Reader) GetU8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// GetI8 reads and consumes one signed byte.
func (r *Reader) GetI8() (int8, error) {
	b, err := r.GetU8()
	return int8(b), err
}

// GetBytes consumes and returns the next n bytes. The returned slice aliases
// the reader's backing storage; callers must copy it before mutating.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// GetU16BE reads a big-endian u16.
func (r *Reader) GetU16BE() (uint16, error) {
	b, err := r.GetBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// GetU16LE reads a little-endian u16.
func (r *Reader) GetU16LE() (uint16, error) {
	b, err := r.GetBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[1])<<8 | uint16(b[0]), nil
}

// GetI16BE reads a big-endian signed 16-bit value.
func (r *Reader) GetI16BE() (int16, error) {
	v, err := r.GetU16BE()
	return int16(v), err
}

// GetU24BE reads a big-endian 24-bit value into the low bits of a uint32.
func (r *Reader) GetU24BE() (uint32, error) {
	b, err := r.GetBytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// GetU32BE reads a big-endian u32.
func (r *Reader) GetU32BE() (uint32, error) {
	b, err := r.GetBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// GetU32LE reads a little-endian u32.
func (r *Reader) GetU32LE() (uint32, error) {
	b, err := r.GetBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0]), nil
}

// GetI32BE reads a big-endian signed 32-bit value.
func (r *Reader) GetI32BE() (int32, error) {
	v, err := r.GetU32BE()
	return int32(v), err
}

// GetU64BE reads a big-endian u64.
func (r *Reader) GetU64BE() (uint64, error) {
	b, err := r.GetBytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// Sub returns a windowed Reader sharing the parent's storage, positioned at
// its own offset 0. It fails if the window would exceed the parent buffer.
func (r *Reader) Sub(offset, size int) (*Reader, error) {
	if offset < 0 || size < 0 || offset+size > len(r.data) {
		return nil, rderr.Newf(rderr.KindOutOfBounds,
			"sub-window [%d, %d) exceeds parent buffer of length %d", offset, offset+size, len(r.data))
	}
	return &Reader{data: r.data[offset : offset+size]}, nil
}

// BitReaderFromHere consumes the remaining bytes as an MSB-first BitReader.
func (r *Reader) BitReaderFromHere() *BitReader {
	br := NewBitReader(r.data[r.pos:])
	r.pos = len(r.data)
	return br
}
