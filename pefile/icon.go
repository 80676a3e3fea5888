// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pefile

import (
	"bytes"
	"encoding/binary"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"

	"github.com/retrodasm/resourcedasm/raster"
	"github.com/retrodasm/resourcedasm/rderr"
)

// pngSignature is the 8-byte magic Vista-era RT_ICON frames carry when the
// frame is PNG-compressed instead of a classic BITMAPINFOHEADER DIB.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// IconFrame is one decoded RT_ICON bitmap belonging to a GroupIcon.
type IconFrame struct {
	Width, Height int
	BitCount      int
	Image         *raster.Image
}

// GroupIcon is one RT_GROUP_ICON resource: the directory naming a set of
// RT_ICON frames at different sizes/depths, each resolved and decoded.
type GroupIcon struct {
	ID     uint32
	Name   string
	Frames []IconFrame
}

// grpIconDirEntry is one NEWHEADER ICONRESDIR record inside a
// RT_GROUP_ICON resource: width/height/color-count/planes/bit-count as in
// a .ico file, but naming an RT_ICON resource id instead of a file offset.
type grpIconDirEntry struct {
	Width, Height, ColorCount, Reserved uint8
	Planes, BitCount                   uint16
	BytesInRes                         uint32
	ID                                 uint16
}

// Icons walks the .rsrc directory's RT_GROUP_ICON entries, resolves each
// frame's matching RT_ICON resource by id, and decodes every frame into
// this module's own raster.Image (not the stdlib image.Image), the same
// BITMAPINFOHEADER-plus-1bpp-AND-mask layout a classic Mac ICN# resource
// uses for its own mask.
func (pe *File) Icons() ([]GroupIcon, error) {
	iconsByID := make(map[uint32][]byte)
	var groupEntries []ResourceDirectoryEntry

	for _, typeEntry := range pe.Resources.Entries {
		switch typeEntry.ID {
		case RTIcon:
			for _, idEntry := range typeEntry.Directory.Entries {
				if len(idEntry.Directory.Entries) == 0 {
					continue
				}
				langEntry := idEntry.Directory.Entries[0]
				offset := pe.GetOffsetFromRva(langEntry.Data.Struct.OffsetToData)
				b, err := pe.ReadBytesAtOffset(offset, langEntry.Data.Struct.Size)
				if err != nil {
					return nil, err
				}
				iconsByID[idEntry.ID] = b
			}
		case RTGroupIcon:
			groupEntries = append(groupEntries, typeEntry.Directory.Entries...)
		}
	}

	groups := make([]GroupIcon, 0, len(groupEntries))
	for _, idEntry := range groupEntries {
		if len(idEntry.Directory.Entries) == 0 {
			continue
		}
		langEntry := idEntry.Directory.Entries[0]
		offset := pe.GetOffsetFromRva(langEntry.Data.Struct.OffsetToData)
		dirBytes, err := pe.ReadBytesAtOffset(offset, langEntry.Data.Struct.Size)
		if err != nil {
			return nil, err
		}

		entries, err := parseGrpIconDir(dirBytes)
		if err != nil {
			return nil, err
		}

		group := GroupIcon{ID: idEntry.ID, Name: idEntry.Name}
		for _, e := range entries {
			frameData, ok := iconsByID[uint32(e.ID)]
			if !ok {
				continue
			}
			img, err := decodeIconFrame(frameData)
			if err != nil {
				pe.logger.Warnf("skipping icon frame %d of group %d: %v", e.ID, idEntry.ID, err)
				continue
			}
			group.Frames = append(group.Frames, IconFrame{
				Width:    int(e.Width),
				Height:   int(e.Height),
				BitCount: int(e.BitCount),
				Image:    img,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func parseGrpIconDir(data []byte) ([]grpIconDirEntry, error) {
	if len(data) < 6 {
		return nil, rderr.New(rderr.KindUnexpectedEOF, "group icon directory header truncated")
	}
	count := binary.LittleEndian.Uint16(data[4:6])
	const entrySize = 14
	need := 6 + int(count)*entrySize
	if need > len(data) {
		return nil, rderr.New(rderr.KindCorruptSize, "group icon directory entries extend past resource end")
	}
	entries := make([]grpIconDirEntry, count)
	for i := range entries {
		base := 6 + i*entrySize
		entries[i] = grpIconDirEntry{
			Width:      data[base],
			Height:     data[base+1],
			ColorCount: data[base+2],
			Reserved:   data[base+3],
			Planes:     binary.LittleEndian.Uint16(data[base+4 : base+6]),
			BitCount:   binary.LittleEndian.Uint16(data[base+6 : base+8]),
			BytesInRes: binary.LittleEndian.Uint32(data[base+8 : base+12]),
			ID:         binary.LittleEndian.Uint16(data[base+12 : base+14]),
		}
	}
	return entries, nil
}

// decodeIconFrame decodes one RT_ICON payload: a Vista-era embedded PNG,
// or a classic BITMAPINFOHEADER DIB (1/4/8/24/32 bpp XOR bitmap followed
// by a 1bpp AND mask), into this module's RGBA raster.
func decodeIconFrame(data []byte) (*raster.Image, error) {
	if bytes.HasPrefix(data, pngSignature) || mimetype.Detect(data).Is("image/png") {
		stdImg, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, rderr.Wrap(rderr.KindUnsupportedFeature, "decoding PNG-compressed icon frame", err)
		}
		return fromStdImage(stdImg)
	}
	return decodeDIBIcon(data)
}

func fromStdImage(src image.Image) (*raster.Image, error) {
	bounds := src.Bounds()
	img, err := raster.New(bounds.Dx(), bounds.Dy(), true)
	if err != nil {
		return nil, err
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			_ = img.Write(x, y, raster.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
	return img, nil
}

func decodeDIBIcon(data []byte) (*raster.Image, error) {
	if len(data) < 40 {
		return nil, rderr.New(rderr.KindUnexpectedEOF, "DIB icon header truncated")
	}
	headerSize := binary.LittleEndian.Uint32(data[0:4])
	if headerSize != 40 {
		return nil, rderr.Newf(rderr.KindUnsupportedFeature, "DIB icon header size %d not supported", headerSize)
	}
	width := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	// The DIB height field counts both the XOR bitmap and the AND mask
	// stacked on top of each other; the icon's true height is half that.
	fullHeight := int(int32(binary.LittleEndian.Uint32(data[8:12])))
	height := fullHeight / 2
	bitCount := int(binary.LittleEndian.Uint16(data[14:16]))
	compression := binary.LittleEndian.Uint32(data[16:20])
	if compression != 0 {
		return nil, rderr.New(rderr.KindUnsupportedFeature, "compressed DIB icon frames are not supported")
	}
	if width <= 0 || height <= 0 {
		return nil, rderr.Newf(rderr.KindCorruptSize, "DIB icon has non-positive dimensions %dx%d", width, height)
	}

	offset := 40
	var palette []raster.RGBA
	if bitCount <= 8 {
		numColors := 1 << uint(bitCount)
		need := offset + numColors*4
		if need > len(data) {
			return nil, rderr.New(rderr.KindUnexpectedEOF, "DIB icon color table truncated")
		}
		palette = make([]raster.RGBA, numColors)
		for i := 0; i < numColors; i++ {
			b := data[offset+i*4]
			g := data[offset+i*4+1]
			r := data[offset+i*4+2]
			palette[i] = raster.Opaque(r, g, b)
		}
		offset += numColors * 4
	}

	xorRowBytes := ((width*bitCount + 31) / 32) * 4
	xorSize := xorRowBytes * height
	andRowBytes := ((width + 31) / 32) * 4
	andSize := andRowBytes * height
	if offset+xorSize+andSize > len(data) {
		return nil, rderr.New(rderr.KindUnexpectedEOF, "DIB icon pixel data truncated")
	}
	xorData := data[offset : offset+xorSize]
	andData := data[offset+xorSize : offset+xorSize+andSize]

	img, err := raster.New(width, height, true)
	if err != nil {
		return nil, err
	}

	readBitCountPixel := func(row []byte, x int) raster.RGBA {
		switch bitCount {
		case 1:
			byteIdx, bit := x/8, 7-uint(x%8)
			idx := (row[byteIdx] >> bit) & 1
			return palette[idx]
		case 4:
			byteIdx := x / 2
			var idx byte
			if x%2 == 0 {
				idx = row[byteIdx] >> 4
			} else {
				idx = row[byteIdx] & 0xF
			}
			return palette[idx]
		case 8:
			return palette[row[x]]
		case 24:
			b, g, r := row[x*3], row[x*3+1], row[x*3+2]
			return raster.Opaque(r, g, b)
		case 32:
			b, g, r, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			return raster.RGBA{R: r, G: g, B: b, A: a}
		default:
			return raster.Opaque(0, 0, 0)
		}
	}

	for y := 0; y < height; y++ {
		// Both the XOR bitmap and the AND mask are stored bottom-up.
		srcRow := height - 1 - y
		xorRow := xorData[srcRow*xorRowBytes : srcRow*xorRowBytes+xorRowBytes]
		andRow := andData[srcRow*andRowBytes : srcRow*andRowBytes+andRowBytes]
		for x := 0; x < width; x++ {
			c := readBitCountPixel(xorRow, x)
			andByte := andRow[x/8]
			transparent := (andByte>>(7-uint(x%8)))&1 != 0
			if transparent && bitCount != 32 {
				c.A = 0
			}
			_ = img.Write(x, y, c)
		}
	}
	return img, nil
}
