package speech

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldnote/fieldnote/internal/common"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// encodeWAV renders int samples into WAV container bytes. The encoder
// needs a seekable writer, so it goes through a temp file.
func encodeWAV(t *testing.T, samples []int, channels int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create temp WAV: %v", err)
	}

	enc := wav.NewEncoder(f, 16000, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 16000},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read WAV back: %v", err)
	}
	return raw
}

func TestDecodeWAVMono(t *testing.T) {
	ints := []int{0, 16384, -16384, 32767, -32768}
	raw := encodeWAV(t, ints, 1)

	samples, err := DecodeWAV(raw)
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}
	if len(samples) != len(ints) {
		t.Fatalf("Decoded %d samples, want %d", len(samples), len(ints))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1.0}
	for i, w := range want {
		if math.Abs(float64(samples[i]-w)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, samples[i], w)
		}
	}
}

func TestDecodeWAVRange(t *testing.T) {
	// Full-scale sweep must rescale strictly inside [-1.0, 1.0).
	ints := make([]int, 0, 256)
	for v := -32768; v <= 32767; v += 256 {
		ints = append(ints, v)
	}
	raw := encodeWAV(t, ints, 1)

	samples, err := DecodeWAV(raw)
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}
	for i, s := range samples {
		if s < -1.0 || s >= 1.0 {
			t.Errorf("sample %d = %v, outside [-1.0, 1.0)", i, s)
		}
	}
}

func TestDecodeWAVStereoDownmix(t *testing.T) {
	// Interleaved L/R pairs average into one mono sample each.
	ints := []int{1000, 3000, -2000, -4000}
	raw := encodeWAV(t, ints, 2)

	samples, err := DecodeWAV(raw)
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("Decoded %d samples, want 2", len(samples))
	}

	want := []float32{2000.0 / 32768.0, -3000.0 / 32768.0}
	for i, w := range want {
		if math.Abs(float64(samples[i]-w)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, samples[i], w)
		}
	}
}

func TestDecodeWAVMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not a wav file")},
		{"truncated header", []byte("RIFF\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWAV(tt.raw)
			if err == nil {
				t.Fatal("DecodeWAV should fail on malformed input")
			}
			if !errors.Is(err, common.ErrAudioDecode) {
				t.Errorf("error = %v, want ErrAudioDecode", err)
			}
		})
	}
}

func TestDecodeWAVEmptyAudio(t *testing.T) {
	raw := encodeWAV(t, []int{}, 1)

	samples, err := DecodeWAV(raw)
	if err != nil {
		t.Fatalf("DecodeWAV failed on empty audio: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("Decoded %d samples from silence container, want 0", len(samples))
	}
}
