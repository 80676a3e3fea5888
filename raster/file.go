package raster

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/retrodasm/resourcedasm/rderr"
)

// Format selects the on-disk encoding for Save.
type Format int

const (
	// ColorPPM is the P6-style raw RGB PPM format.
	ColorPPM Format = iota
	// WindowsBitmap is 24-bit uncompressed BMP.
	WindowsBitmap
)

// Save writes the image to path in the requested format.
func (img *Image) Save(path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch format {
	case ColorPPM:
		if err := img.writePPM(w); err != nil {
			return err
		}
	case WindowsBitmap:
		if err := img.writeBMP(w); err != nil {
			return err
		}
	default:
		return rderr.Newf(rderr.KindUnsupportedFeature, "unknown image format %d", format)
	}
	return w.Flush()
}

func (img *Image) writePPM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P6 %d %d 255\n", img.Width, img.Height); err != nil {
		return err
	}
	row := make([]byte, img.Width*3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.pix[y*img.Width+x]
			row[x*3] = p.R
			row[x*3+1] = p.G
			row[x*3+2] = p.B
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// bmpPixelsPerMeter is the standard 72-dpi-ish pixels-per-meter constant (0xB12) the
// spec's BMP header hardcodes.
const bmpPixelsPerMeter = 0xB12

func (img *Image) writeBMP(w io.Writer) error {
	rowSize := (img.Width*3 + 3) &^ 3
	pixelDataSize := rowSize * img.Height
	fileSize := 14 + 40 + pixelDataSize

	var hdr [54]byte
	hdr[0], hdr[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(hdr[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(hdr[10:], 54)
	binary.LittleEndian.PutUint32(hdr[14:], 40)
	binary.LittleEndian.PutUint32(hdr[18:], uint32(img.Width))
	binary.LittleEndian.PutUint32(hdr[22:], uint32(img.Height))
	binary.LittleEndian.PutUint16(hdr[26:], 1)
	binary.LittleEndian.PutUint16(hdr[28:], 24)
	binary.LittleEndian.PutUint32(hdr[34:], uint32(pixelDataSize))
	binary.LittleEndian.PutUint32(hdr[38:], bmpPixelsPerMeter)
	binary.LittleEndian.PutUint32(hdr[42:], bmpPixelsPerMeter)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	row := make([]byte, rowSize)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			p := img.pix[y*img.Width+x]
			row[x*3] = p.B
			row[x*3+1] = p.G
			row[x*3+2] = p.R
		}
		for i := img.Width * 3; i < rowSize; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a PPM (P5 or P6) or 24-bit uncompressed BMP file.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading image magic", err)
	}

	if magic[0] == 'B' && magic[1] == 'M' {
		return readBMP(br)
	}
	if magic[0] == 'P' && (magic[1] == '5' || magic[1] == '6') {
		return readPNM(br)
	}
	return nil, rderr.New(rderr.KindBadMagic, "unrecognized image file signature")
}

func readPNM(br *bufio.Reader) (*Image, error) {
	var kind byte
	var width, height, maxval int
	tokens := make([]string, 0, 4)

	readToken := func() (string, error) {
		var tok []byte
		for {
			b, err := br.ReadByte()
			if err != nil {
				return "", err
			}
			if b == '#' {
				for {
					c, err := br.ReadByte()
					if err != nil || c == '\n' {
						break
					}
				}
				continue
			}
			if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
				if len(tok) > 0 {
					return string(tok), nil
				}
				continue
			}
			tok = append(tok, b)
		}
	}

	magic, err := readToken()
	if err != nil {
		return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading PNM magic", err)
	}
	kind = magic[1]
	for len(tokens) < 3 {
		tok, err := readToken()
		if err != nil {
			return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading PNM header", err)
		}
		tokens = append(tokens, tok)
	}
	width, _ = strconv.Atoi(tokens[0])
	height, _ = strconv.Atoi(tokens[1])
	maxval, _ = strconv.Atoi(tokens[2])
	_ = maxval

	img, err := New(width, height, false)
	if err != nil {
		return nil, err
	}

	if kind == '6' {
		row := make([]byte, width*3)
		for y := 0; y < height; y++ {
			if _, err := io.ReadFull(br, row); err != nil {
				return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading PPM pixel data", err)
			}
			for x := 0; x < width; x++ {
				_ = img.Write(x, y, Opaque(row[x*3], row[x*3+1], row[x*3+2]))
			}
		}
		return img, nil
	}

	row := make([]byte, width)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading PGM pixel data", err)
		}
		for x := 0; x < width; x++ {
			v := row[x]
			_ = img.Write(x, y, Opaque(v, v, v))
		}
	}
	return img, nil
}

func readBMP(br *bufio.Reader) (*Image, error) {
	var hdr [54]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading BMP header", err)
	}

	dataOffset := binary.LittleEndian.Uint32(hdr[10:])
	headerSize := binary.LittleEndian.Uint32(hdr[14:])
	width := int(int32(binary.LittleEndian.Uint32(hdr[18:])))
	height := int(int32(binary.LittleEndian.Uint32(hdr[22:])))
	planes := binary.LittleEndian.Uint16(hdr[26:])
	bitDepth := binary.LittleEndian.Uint16(hdr[28:])
	compression := binary.LittleEndian.Uint32(hdr[30:])

	if headerSize != 40 || planes != 1 || bitDepth != 24 || compression != 0 {
		return nil, rderr.New(rderr.KindUnsupportedFeature, "only 24-bit uncompressed BMP is supported")
	}

	if dataOffset > 54 {
		if _, err := io.CopyN(io.Discard, br, int64(dataOffset-54)); err != nil {
			return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "skipping to BMP pixel data", err)
		}
	}

	img, err := New(width, height, false)
	if err != nil {
		return nil, err
	}

	rowSize := (width*3 + 3) &^ 3
	row := make([]byte, rowSize)
	for y := height - 1; y >= 0; y-- {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, rderr.Wrap(rderr.KindUnexpectedEOF, "reading BMP pixel data", err)
		}
		for x := 0; x < width; x++ {
			b, g, r := row[x*3], row[x*3+1], row[x*3+2]
			_ = img.Write(x, y, Opaque(r, g, b))
		}
	}
	return img, nil
}
