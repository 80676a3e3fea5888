// Package compress implements the family of compression and bit-packing
// schemes used by classic Mac resource payloads: PackBits and its icns
// RLE cousin, the RUN4/COOK/CO2K family, DinoPark Tycoon's LZSS and RLE,
// Presage and SoundMusicSys LZSS, the PSCR/PPCT monochrome bit-packers,
// Dark Castle's DC2 variable-width codec, and the PPSS/Presage opcode
// streams. Every codec here is a pure function: no shared mutable state,
// decode only except where an encoder is the round-trip partner of a
// decoder (PackBits, icns RLE).
package compress

import "github.com/retrodasm/resourcedasm/rderr"

// UnpackBits decodes a PackBits stream. When maxOut is non-negative, it
// stops at the earliest whole-command boundary whose output reaches
// maxOut bytes.
func UnpackBits(data []byte, maxOut int) ([]byte, error) {
	out := make([]byte, 0, len(data)*2)
	i := 0
	for i < len(data) {
		if maxOut >= 0 && len(out) >= maxOut {
			break
		}
		c := int8(data[i])
		i++
		switch {
		case c == -128:
			// no-op
		case c < 0:
			if i >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "packbits: truncated repeat command")
			}
			v := data[i]
			i++
			count := 1 - int(c)
			for j := 0; j < count; j++ {
				out = append(out, v)
			}
		default:
			n := int(c) + 1
			if i+n > len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "packbits: truncated literal run")
			}
			out = append(out, data[i:i+n]...)
			i += n
		}
	}
	return out, nil
}

// PackBits is the inverse of UnpackBits: a maximal-run-length encoder
// whose output, fed back through UnpackBits, reproduces the input
// exactly.
func PackBits(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == data[i] && runLen < 128 {
			runLen++
		}
		if runLen >= 2 {
			out = append(out, byte(int8(1-runLen)), data[i])
			i += runLen
			continue
		}

		// Accumulate a literal run until a repeat of length >= 2 appears
		// or we hit the 128-byte literal cap.
		start := i
		i++
		for i < len(data) && i-start < 128 {
			if i+1 < len(data) && data[i] == data[i+1] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, data[start:i]...)
	}
	return out
}

// UnpackICNSRLE decodes the icns variant of PackBits: a command byte
// below 0x80 copies the next c+1 bytes verbatim; 0x80 and above repeats
// the next byte (c - 0x80 + 3) times.
func UnpackICNSRLE(data []byte, maxOut int) ([]byte, error) {
	out := make([]byte, 0, len(data)*2)
	i := 0
	for i < len(data) {
		if maxOut >= 0 && len(out) >= maxOut {
			break
		}
		c := data[i]
		i++
		if c < 0x80 {
			n := int(c) + 1
			if i+n > len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "icns rle: truncated literal run")
			}
			out = append(out, data[i:i+n]...)
			i += n
		} else {
			if i >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "icns rle: truncated repeat command")
			}
			v := data[i]
			i++
			count := int(c) - 0x80 + 3
			for j := 0; j < count; j++ {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

// PackICNSRLEStrided encodes a single channel of interleaved pixel data
// (one byte every `stride` bytes, starting at `offset`) using the icns
// RLE scheme, with a minimum run length of 3.
func PackICNSRLEStrided(data []byte, offset, stride int) []byte {
	var channel []byte
	for i := offset; i < len(data); i += stride {
		channel = append(channel, data[i])
	}

	var out []byte
	i := 0
	for i < len(channel) {
		runLen := 1
		for i+runLen < len(channel) && channel[i+runLen] == channel[i] && runLen < 130 {
			runLen++
		}
		if runLen >= 3 {
			out = append(out, byte(0x80+runLen-3), channel[i])
			i += runLen
			continue
		}

		start := i
		i++
		for i < len(channel) && i-start < 128 {
			run := 1
			for i+run < len(channel) && channel[i+run] == channel[i] && run < 3 {
				run++
			}
			if run >= 3 {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, channel[start:i]...)
	}
	return out
}
