package decode

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/colortable"
	"github.com/retrodasm/resourcedasm/rderr"
)

// macRomanToUTF8 decodes a Mac OS Roman byte string into a UTF-8 Go
// string, falling back to the raw bytes on malformed input rather than
// failing the whole decode.
func macRomanToUTF8(b []byte) string {
	decoded, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// decodeSTR reads a single 'STR ' resource: a Pascal string (length byte
// followed by that many Mac OS Roman bytes).
func decodeSTR(data []byte, _ int16, _ Options) (Artifact, error) {
	if len(data) < 1 {
		return Artifact{}, rderr.New(rderr.KindUnexpectedEOF, "STR: empty resource")
	}
	n := int(data[0])
	if 1+n > len(data) {
		return Artifact{}, rderr.New(rderr.KindCorruptSize, "STR: length byte exceeds resource size")
	}
	return Artifact{Kind: KindText, Text: macRomanToUTF8(data[1 : 1+n])}, nil
}

// decodeSTRSharp reads an 'STR#' resource: {count: i16, strings: Pascal
// string[count]}, joined with newlines.
func decodeSTRSharp(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	count, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	text := ""
	for i := int16(0); i < count; i++ {
		n, err := r.GetU8()
		if err != nil {
			return Artifact{}, err
		}
		b, err := r.GetBytes(int(n))
		if err != nil {
			return Artifact{}, err
		}
		if i > 0 {
			text += "\n"
		}
		text += macRomanToUTF8(b)
	}
	return Artifact{Kind: KindText, Text: text}, nil
}

// decodeTEXT reads a 'TEXT' resource: raw Mac OS Roman prose, no header.
func decodeTEXT(data []byte, _ int16, _ Options) (Artifact, error) {
	return Artifact{Kind: KindText, Text: macRomanToUTF8(data)}, nil
}

// StyleRun is one formatting run from a 'styl' resource, applying to the
// companion TEXT resource starting at StartOffset.
type StyleRun struct {
	StartOffset int32
	FontID      int16
	StyleFlags  uint16
	Size        int16
	Color       colortable.Color
}

// decodeStyl reads a 'styl' resource: {num_runs: i16, runs:
// (offset: i32, unknown1/2: u16, font_id: i16, style_flags: u16,
// size: i16, color: 3×u16)[num_runs]}, emitted as JSON since it's
// metadata describing a companion TEXT resource rather than renderable
// text on its own.
func decodeStyl(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	numRuns, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}
	runs := make([]StyleRun, numRuns)
	for i := range runs {
		offset, err := r.GetI32BE()
		if err != nil {
			return Artifact{}, err
		}
		if _, err := r.GetBytes(4); err != nil { // unknown1, unknown2
			return Artifact{}, err
		}
		fontID, err := r.GetI16BE()
		if err != nil {
			return Artifact{}, err
		}
		styleFlags, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		size, err := r.GetI16BE()
		if err != nil {
			return Artifact{}, err
		}
		red, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		green, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		blue, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		runs[i] = StyleRun{
			StartOffset: offset,
			FontID:      fontID,
			StyleFlags:  styleFlags,
			Size:        size,
			Color:       colortable.Color{R: red, G: green, B: blue},
		}
	}
	return Artifact{Kind: KindJSON, JSON: marshalStyleRuns(runs)}, nil
}
