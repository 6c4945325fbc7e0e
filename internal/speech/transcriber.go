package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fieldnote/fieldnote/internal/common"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// transcribeLanguage is fixed; the cached model is English-only.
const transcribeLanguage = "en"

// Transcriber runs single-utterance whisper inference. The model is
// loaded fresh per call and released before returning; no in-memory
// session survives between calls.
type Transcriber struct{}

// NewTranscriber creates a Transcriber.
func NewTranscriber() *Transcriber {
	return &Transcriber{}
}

// Transcribe decodes one normalized sample stream into text. Decoding is
// greedy and deterministic: identical input produces identical output.
// An empty-but-valid transcription of silence is an empty string, not an
// error.
func (t *Transcriber) Transcribe(ctx context.Context, modelPath string, samples []float32) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	model, err := whisper.New(modelPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelLoad, err)
	}
	defer model.Close()

	wctx, err := model.NewContext()
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelLoad, err)
	}

	wctx.SetTranslate(false)
	if err := wctx.SetLanguage(transcribeLanguage); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInference, err)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInference, err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrInference, err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
