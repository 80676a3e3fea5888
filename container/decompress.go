package container

import (
	"encoding/binary"

	"github.com/retrodasm/resourcedasm/rderr"
)

// compressedHeaderMagic is the 'A89F' compressed-resource signature
// word, confirming the payload really is dcmp-wrapped rather than a
// resource that merely happens to have the attrs bit set.
const compressedHeaderMagic = 0xA89F

// decompressResource strips a compressed resource's header
// ({header_len: u16 BE, magic: u16 BE, dcmp_id: i16 BE, ...}) and hands
// the payload, with the dcmp id the header names, to the caller-supplied
// Decompressor. The container does not look up or run the dcmp resource
// itself, since running arbitrary 68K code is the embedded-emulator
// external collaborator this package does not implement.
func (c *Container) decompressResource(r Resource) ([]byte, error) {
	if len(r.Bytes) < 6 {
		return nil, rderr.New(rderr.KindUnexpectedEOF, "compressed resource header truncated")
	}

	headerLen := binary.BigEndian.Uint16(r.Bytes[0:2])
	magic := binary.BigEndian.Uint16(r.Bytes[2:4])
	if magic != compressedHeaderMagic {
		return nil, rderr.Newf(rderr.KindBadMagic, "compressed resource magic %#x != %#x", magic, compressedHeaderMagic)
	}
	dcmpID := int16(binary.BigEndian.Uint16(r.Bytes[4:6]))

	if int(headerLen) > len(r.Bytes) {
		return nil, rderr.New(rderr.KindCorruptSize, "compressed resource header_len exceeds payload size")
	}
	payload := r.Bytes[headerLen:]

	if c.opts.Decompressor == nil {
		return nil, rderr.Newf(rderr.KindUnsupportedFeature,
			"resource %s/%d needs dcmp %d but no Decompressor was configured", r.Type, r.ID, dcmpID)
	}
	return c.opts.Decompressor.Decompress(dcmpID, payload)
}
