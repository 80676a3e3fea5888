package compress

import "github.com/retrodasm/resourcedasm/rderr"

// Codec identifies one of the compression schemes this package decodes,
// for container and decoder packages that need to select a codec by name
// (e.g. from a dcmp resource's declared algorithm) rather than calling
// the decode function directly.
type Codec int

const (
	CodecPackBits Codec = iota
	CodecICNSRLE
	CodecRUN4
	CodecCOOK
	CodecDinoParkLZSS
	CodecDinoParkRLE
	CodecPresageLZSS
	CodecSoundMusicSysLZSS
)

// Decode dispatches to the named codec with a declared output size. Only
// PackBits, icns RLE, and Presage LZSS use it; RUN4, COOK/CO2K, and the
// DinoPark codecs read the size from their own headers, and
// SoundMusicSys LZSS has no length field.
func Decode(codec Codec, data []byte, outLen int) ([]byte, error) {
	switch codec {
	case CodecPackBits:
		return UnpackBits(data, outLen)
	case CodecICNSRLE:
		return UnpackICNSRLE(data, outLen)
	case CodecRUN4:
		return DecodeRUN4(data)
	case CodecCOOK:
		return DecodeCOOK(data)
	case CodecDinoParkLZSS:
		return DecodeDinoParkLZSS(data)
	case CodecDinoParkRLE:
		return DecodeDinoParkRLE(data)
	case CodecPresageLZSS:
		return DecodePresageLZSS(data, outLen)
	case CodecSoundMusicSysLZSS:
		return DecodeSoundMusicSysLZSS(data)
	default:
		return nil, rderr.Newf(rderr.KindUnsupportedFeature, "unknown codec %d", codec)
	}
}
