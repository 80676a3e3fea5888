package quickdraw

import (
	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/compress"
)

// ReadPackBitsRow reads one PICT/pixel-map scan-line. Scan-line mode only
// applies once row_bytes >= 8; the length prefix is 1 byte when
// row_bytes < 250 and 2 bytes otherwise. The returned row is always
// exactly row_bytes bytes long.
func ReadPackBitsRow(r *byteio.Reader, rowBytes int) ([]byte, error) {
	if rowBytes < 8 {
		return r.GetBytes(rowBytes)
	}

	var length int
	if rowBytes < 250 {
		b, err := r.GetU8()
		if err != nil {
			return nil, err
		}
		length = int(b)
	} else {
		v, err := r.GetU16BE()
		if err != nil {
			return nil, err
		}
		length = int(v)
	}

	packed, err := r.GetBytes(length)
	if err != nil {
		return nil, err
	}
	return compress.UnpackBits(packed, rowBytes)
}
