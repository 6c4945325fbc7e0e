// Package speech implements the local speech-to-text pipeline: model
// acquisition and caching, WAV decoding, and whisper inference.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fieldnote/fieldnote/internal/common"

	"github.com/schollz/progressbar/v3"
)

// Default model source. One fixed pre-trained model, fetched once and
// cached under <data>/models thereafter.
const (
	DefaultModelURL      = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.en.bin"
	DefaultModelFilename = "ggml-base.en.bin"

	downloadUserAgent = "fieldnote/1.0"
)

// ModelCache ensures the speech model binary is present on local disk.
type ModelCache struct {
	HTTPClient *http.Client
	URL        string
	Filename   string
}

// NewModelCache returns a cache for the default whisper model.
func NewModelCache() *ModelCache {
	return &ModelCache{
		HTTPClient: http.DefaultClient,
		URL:        DefaultModelURL,
		Filename:   DefaultModelFilename,
	}
}

// EnsureModel returns the local path of the model binary, downloading it
// on first use. When the file already exists this is a single stat; no
// integrity check is performed on a cached file.
func (m *ModelCache) EnsureModel(ctx context.Context, dataDir string) (string, error) {
	modelsDir := filepath.Join(dataDir, "models")
	if err := os.MkdirAll(modelsDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create models directory: %w", err)
	}

	modelPath := filepath.Join(modelsDir, m.Filename)
	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}

	common.LogInfo("downloading speech model", common.Fields{"url": m.URL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelDownload, err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %s", common.ErrModelDownload, resp.Status)
	}

	// Stream to a uniquely named temp sibling and rename into place so a
	// torn download never lands at the final path. Concurrent first runs
	// each get their own temp file; the last rename wins with a
	// fully-written copy.
	tmp, err := os.CreateTemp(modelsDir, m.Filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelDownload, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	bar := progressbar.DefaultBytes(resp.ContentLength, "downloading model")
	if _, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: %v", common.ErrModelDownload, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelDownload, err)
	}

	if err := os.Rename(tmpPath, modelPath); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrModelDownload, err)
	}

	common.LogInfo("speech model ready", common.Fields{"path": modelPath})
	return modelPath, nil
}
