package compress

import (
	"encoding/binary"

	"github.com/retrodasm/resourcedasm/rderr"
)

// DecodeRUN4 decodes a RUN4-compressed buffer: literal 'RUN4' magic,
// big-endian decompressed size, four command bytes C3/C4/C5/CV that
// select 3/4/5-byte runs or a variable-length run respectively.
func DecodeRUN4(data []byte) ([]byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RUN4" {
		return nil, rderr.New(rderr.KindBadMagic, "run4: missing 'RUN4' signature")
	}
	size := binary.BigEndian.Uint32(data[4:8])
	c3, c4, c5, cv := data[8], data[9], data[10], data[11]

	out := make([]byte, 0, size)
	i := 12
	for uint32(len(out)) < size {
		if i >= len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "run4: truncated command stream")
		}
		cmd := data[i]
		i++
		switch cmd {
		case c3, c4, c5:
			if i >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "run4: truncated run byte")
			}
			v := data[i]
			i++
			n := 3
			if cmd == c4 {
				n = 4
			} else if cmd == c5 {
				n = 5
			}
			for j := 0; j < n; j++ {
				out = append(out, v)
			}
		case cv:
			if i+1 >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "run4: truncated variable-length run")
			}
			count := data[i]
			v := data[i+1]
			i += 2
			for j := byte(0); j < count; j++ {
				out = append(out, v)
			}
		default:
			out = append(out, cmd)
		}
	}
	if uint32(len(out)) != size {
		return nil, rderr.New(rderr.KindCorruptSize, "run4: output size overshoot")
	}
	return out, nil
}

// DecodeCOOK decodes a 'COOK'- or 'CO2K'-tagged buffer. CO2K carries a
// version byte (1 or 2); version 2 adds three "far" command bytes whose
// backreference offset is split across two bytes (high byte first).
func DecodeCOOK(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, rderr.New(rderr.KindUnexpectedEOF, "cook: header truncated")
	}
	magic := string(data[0:4])
	if magic != "COOK" && magic != "CO2K" {
		return nil, rderr.New(rderr.KindBadMagic, "cook: missing 'COOK'/'CO2K' signature")
	}
	size := binary.BigEndian.Uint32(data[4:8])

	i := 8
	var version byte
	var farCmds [3]byte
	if magic == "CO2K" {
		if i >= len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "co2k: missing version byte")
		}
		version = data[i]
		i++
		if version != 1 && version != 2 {
			return nil, rderr.Newf(rderr.KindUnsupportedFeature, "co2k: unsupported version %d", version)
		}
		if version == 2 {
			if i+3 > len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "co2k v2: missing far command bytes")
			}
			farCmds[0], farCmds[1], farCmds[2] = data[i], data[i+1], data[i+2]
			i += 3
		}
	}

	out := make([]byte, 0, size)
	isFar := func(b byte) (int, bool) {
		for n, c := range farCmds {
			if version == 2 && b == c {
				return n + 3, true
			}
		}
		return 0, false
	}

	for uint32(len(out)) < size {
		if i >= len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "cook: truncated command stream")
		}
		cmd := data[i]
		i++

		copyLen, far := isFar(cmd)
		switch {
		case far:
			if i+1 >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "cook: truncated far offset")
			}
			offset := int(data[i])<<8 | int(data[i+1])
			i += 2
			if offset == 0 {
				out = append(out, cmd)
				continue
			}
			if err := copyBack(&out, offset, copyLen); err != nil {
				return nil, err
			}
		case cmd == 0:
			if i >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "cook: truncated literal byte")
			}
			out = append(out, data[i])
			i++
		case cmd >= 1 && cmd <= 3:
			if i >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "cook: truncated short-copy offset")
			}
			offset := int(data[i])
			i++
			if err := copyBack(&out, offset, int(cmd)+2); err != nil {
				return nil, err
			}
		default:
			if i+1 >= len(data) {
				return nil, rderr.New(rderr.KindUnexpectedEOF, "cook: truncated variable copy")
			}
			length := int(cmd)
			offset := int(data[i])
			i++
			if err := copyBack(&out, offset, length); err != nil {
				return nil, err
			}
		}
	}
	if uint32(len(out)) != size {
		return nil, rderr.New(rderr.KindCorruptSize, "cook: output size overshoot")
	}
	return out, nil
}

func copyBack(out *[]byte, offset, length int) error {
	if offset <= 0 || offset > len(*out) {
		return rderr.Newf(rderr.KindOutOfBounds, "cook: backreference offset %d exceeds output length %d", offset, len(*out))
	}
	start := len(*out) - offset
	for j := 0; j < length; j++ {
		*out = append(*out, (*out)[start+j])
	}
	return nil
}

// DecodeMacSkiMulti repeatedly peeks the leading four bytes and applies
// RUN4 or COOK/CO2K decompression until the magic no longer matches,
// returning the original buffer unchanged if no pass applied.
func DecodeMacSkiMulti(data []byte) ([]byte, error) {
	cur := data
	for {
		if len(cur) < 4 {
			return cur, nil
		}
		magic := string(cur[0:4])
		var next []byte
		var err error
		switch magic {
		case "RUN4":
			next, err = DecodeRUN4(cur)
		case "COOK", "CO2K":
			next, err = DecodeCOOK(cur)
		default:
			return cur, nil
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
}
