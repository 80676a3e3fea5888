package decode

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/retrodasm/resourcedasm/byteio"
	"github.com/retrodasm/resourcedasm/rderr"
)

// memWriteSeeker is a growable in-memory io.WriteSeeker: wav.Encoder needs
// to seek back and patch chunk sizes at Close, which a plain
// bytes.Buffer can't do.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (w *memWriteSeeker) Write(p []byte) (int, error) {
	end := w.pos + len(p)
	if end > len(w.buf) {
		grown := make([]byte, end)
		copy(grown, w.buf)
		w.buf = grown
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
	return len(p), nil
}

func (w *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(w.pos) + offset
	case io.SeekEnd:
		next = int64(len(w.buf)) + offset
	}
	w.pos = int(next)
	return next, nil
}

// encodeWAV renders raw unsigned/signed PCM samples into a complete WAV
// byte stream via go-audio/wav.
func encodeWAV(samples []int, sampleRate, bitDepth, numChannels int) ([]byte, error) {
	ws := &memWriteSeeker{}
	enc := wav.NewEncoder(ws, sampleRate, bitDepth, numChannels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, rderr.Wrap(rderr.KindUnsupportedFeature, "encoding WAV", err)
	}
	if err := enc.Close(); err != nil {
		return nil, rderr.Wrap(rderr.KindUnsupportedFeature, "closing WAV encoder", err)
	}
	return ws.buf, nil
}

// decodeSnd reads a classic 'snd ' resource (format 1 or 2 header, a
// single data-format-5 sampled-sound entry, a command list, and a
// standard-format SoundResourceSampleBuffer referenced by a bufferCmd/
// soundCmd command) and re-encodes its PCM payload as a WAV file.
// Extended (0xFF) and compressed (0xFE) sample buffer encodings need
// per-codec unpacking this package doesn't implement and report
// KindUnsupportedFeature.
func decodeSnd(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	formatCode, err := r.GetI16BE()
	if err != nil {
		return Artifact{}, err
	}

	var numCommands int
	switch formatCode {
	case 1:
		dataFormatCount, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		for i := uint16(0); i < dataFormatCount; i++ {
			formatID, err := r.GetU16BE()
			if err != nil {
				return Artifact{}, err
			}
			if _, err := r.GetU32BE(); err != nil { // flags
				return Artifact{}, err
			}
			if formatID != 5 {
				return Artifact{}, rderr.Newf(rderr.KindUnsupportedFeature, "snd: unsupported data format id %d", formatID)
			}
		}
		n, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		numCommands = int(n)
	case 2:
		if _, err := r.GetU16BE(); err != nil { // reference count
			return Artifact{}, err
		}
		n, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		numCommands = int(n)
	default:
		return Artifact{}, rderr.Newf(rderr.KindUnsupportedFeature, "snd: unsupported header format code %d", formatCode)
	}

	var bufferOffset = -1
	for i := 0; i < numCommands; i++ {
		command, err := r.GetU16BE()
		if err != nil {
			return Artifact{}, err
		}
		if _, err := r.GetU16BE(); err != nil { // param1
			return Artifact{}, err
		}
		param2, err := r.GetU32BE()
		if err != nil {
			return Artifact{}, err
		}
		// soundCmd = 0x50, bufferCmd = 0x51; the 0x8000 bit marks param2
		// as an offset into the resource rather than a pointer.
		if command == 0x8050 || command == 0x8051 {
			bufferOffset = int(param2)
		}
	}
	if bufferOffset < 0 || bufferOffset >= len(data) {
		return Artifact{}, rderr.New(rderr.KindMissingResource, "snd: no sample buffer command found")
	}

	br := byteio.NewReader(data)
	if err := br.Seek(bufferOffset); err != nil {
		return Artifact{}, err
	}
	if _, err := br.GetU32BE(); err != nil { // data_offset, relative offset unused here since we've already seeked
		return Artifact{}, err
	}
	dataBytes, err := br.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}
	sampleRateFixed, err := br.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}
	if _, err := br.GetU32BE(); err != nil { // loop_start
		return Artifact{}, err
	}
	if _, err := br.GetU32BE(); err != nil { // loop_end
		return Artifact{}, err
	}
	encoding, err := br.GetU8()
	if err != nil {
		return Artifact{}, err
	}
	if _, err := br.GetU8(); err != nil { // base_note
		return Artifact{}, err
	}
	if encoding != 0x00 {
		return Artifact{}, rderr.Newf(rderr.KindUnsupportedFeature, "snd: sample buffer encoding %#x is not supported", encoding)
	}

	sampleRate := int(sampleRateFixed >> 16)
	pcm, err := br.GetBytes(int(dataBytes))
	if err != nil {
		return Artifact{}, err
	}
	samples := make([]int, len(pcm))
	for i, b := range pcm {
		samples[i] = int(b)
	}

	wavBytes, err := encodeWAV(samples, sampleRate, 8, 1)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindAudio, Audio: wavBytes}, nil
}

// decodeMohawkSound reads a Mohawk archive's 'Data' or 'Cue#' sound
// chunk: {sample_rate: u16 BE, num_samples: u32 BE, sample_bits: u8,
// num_channels: u8, unknown[3]: u32 BE}, immediately followed by raw PCM
// sample data, re-encoded as a WAV file.
func decodeMohawkSound(data []byte, _ int16, _ Options) (Artifact, error) {
	r := byteio.NewReader(data)
	sampleRate, err := r.GetU16BE()
	if err != nil {
		return Artifact{}, err
	}
	numSamples, err := r.GetU32BE()
	if err != nil {
		return Artifact{}, err
	}
	sampleBits, err := r.GetU8()
	if err != nil {
		return Artifact{}, err
	}
	numChannels, err := r.GetU8()
	if err != nil {
		return Artifact{}, err
	}
	if _, err := r.GetBytes(12); err != nil { // unknown[3]
		return Artifact{}, err
	}
	if sampleBits != 8 && sampleBits != 16 {
		return Artifact{}, rderr.Newf(rderr.KindUnsupportedFeature, "Mohawk sound: unsupported sample bit depth %d", sampleBits)
	}
	if numChannels == 0 {
		numChannels = 1
	}

	bytesPerSample := int(sampleBits) / 8
	pcm, err := r.GetBytes(int(numSamples) * bytesPerSample * int(numChannels))
	if err != nil {
		return Artifact{}, err
	}

	var samples []int
	if sampleBits == 8 {
		samples = make([]int, len(pcm))
		for i, b := range pcm {
			samples[i] = int(b)
		}
	} else {
		samples = make([]int, len(pcm)/2)
		for i := range samples {
			samples[i] = int(int16(uint16(pcm[2*i])<<8 | uint16(pcm[2*i+1])))
		}
	}

	wavBytes, err := encodeWAV(samples, int(sampleRate), int(sampleBits), int(numChannels))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindAudio, Audio: wavBytes}, nil
}
