package decode

import (
	"bytes"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	wav, err := encodeWAV([]int{0, 10, -10, 20}, 11025, 8, 1)
	if err != nil {
		t.Fatalf("encodeWAV: %v", err)
	}
	if len(wav) < 44 {
		t.Fatalf("encodeWAV produced %d bytes, want at least a 44-byte header", len(wav))
	}
	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Errorf("encodeWAV missing RIFF magic, got %q", wav[0:4])
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Errorf("encodeWAV missing WAVE magic, got %q", wav[8:12])
	}
}

func TestDecodeMohawkSound8Bit(t *testing.T) {
	data := []byte{
		0x2B, 0x11, // sample_rate = 11025
		0x00, 0x00, 0x00, 0x04, // num_samples = 4
		0x08, // sample_bits = 8
		0x01, // num_channels = 1
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // unknown[3]
		0x80, 0x90, 0xA0, 0xB0, // PCM
	}
	a, err := decodeMohawkSound(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeMohawkSound: %v", err)
	}
	if a.Kind != KindAudio || len(a.Audio) == 0 {
		t.Fatalf("decodeMohawkSound produced no audio")
	}
}

func TestDecodeMohawkSoundBadBitDepth(t *testing.T) {
	data := []byte{
		0x2B, 0x11,
		0x00, 0x00, 0x00, 0x01,
		0x0C, // unsupported 12-bit
		0x01,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	if _, err := decodeMohawkSound(data, 0, Options{}); err == nil {
		t.Fatal("decodeMohawkSound: expected error for unsupported bit depth")
	}
}

func TestDecodeSndFormat1(t *testing.T) {
	data := []byte{
		0x00, 0x01, // format code 1
		0x00, 0x01, // data format count = 1
		0x00, 0x05, // format id = 5 (sampled sound)
		0x00, 0x00, 0x00, 0x00, // flags
		0x00, 0x01, // num commands = 1
		0x80, 0x50, // command = soundCmd with the offset flag (0x8050)
		0x00, 0x00, // param1
		0x00, 0x00, 0x00, 0x14, // param2 = bufferOffset (20)
	}
	// pad to offset 20, then SoundResourceSampleBuffer
	for len(data) < 20 {
		data = append(data, 0)
	}
	data = append(data,
		0x00, 0x00, 0x00, 0x00, // data_offset
		0x00, 0x00, 0x00, 0x02, // data_bytes = 2
		0x2B, 0x11, 0x00, 0x00, // sample_rate fixed 16.16, integer part 11025
		0x00, 0x00, 0x00, 0x00, // loop_start
		0x00, 0x00, 0x00, 0x00, // loop_end
		0x00,       // encoding = 0 (standard)
		0x3C,       // base_note
		0x80, 0x90, // PCM data
	)
	a, err := decodeSnd(data, 0, Options{})
	if err != nil {
		t.Fatalf("decodeSnd: %v", err)
	}
	if a.Kind != KindAudio || len(a.Audio) == 0 {
		t.Fatalf("decodeSnd produced no audio")
	}
}
