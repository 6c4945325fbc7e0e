package speech

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fieldnote/fieldnote/internal/common"

	"github.com/go-audio/wav"
)

// pcmFormat is the WAVE format tag for uncompressed PCM.
const pcmFormat = 1

// DecodeWAV parses a 16-bit PCM WAV container and returns a mono float32
// sample stream in [-1.0, 1.0), the shape whisper inference requires.
// Stereo input is downmixed by channel averaging; more than two channels
// is rejected. Out-of-range sample values are substituted with zero
// rather than failing the whole decode.
func DecodeWAV(raw []byte) ([]float32, error) {
	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV container", common.ErrAudioDecode)
	}

	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: unsupported encoding %d", common.ErrAudioDecode, dec.WavAudioFormat)
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", common.ErrAudioDecode, dec.BitDepth)
	}

	channels := int(dec.NumChans)
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", common.ErrAudioDecode, channels)
	}

	buf, err := dec.FullPCMBuffer()
	if buf == nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAudioDecode, err)
	}
	// A partial buffer with a read error still decodes; truncated tails
	// are tolerated in favor of never failing a whole capture.

	data := buf.Data
	if channels == 2 {
		data = downmixStereo(data)
	}

	samples := make([]float32, len(data))
	for i, v := range data {
		if v < math.MinInt16 || v > math.MaxInt16 {
			v = 0
		}
		samples[i] = float32(v) / 32768.0
	}

	return samples, nil
}

// downmixStereo averages interleaved left/right pairs into mono. An odd
// trailing sample carries through unpaired.
func downmixStereo(data []int) []int {
	mono := make([]int, 0, (len(data)+1)/2)
	for i := 0; i+1 < len(data); i += 2 {
		mono = append(mono, (data[i]+data[i+1])/2)
	}
	if len(data)%2 == 1 {
		mono = append(mono, data[len(data)-1])
	}
	return mono
}
