package engine

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SaveAudioBlob writes a raw voice capture into the inbox, named by
// capture time in milliseconds, and returns its path.
func (e *Engine) SaveAudioBlob(audio []byte) (string, error) {
	inbox := filepath.Join(e.dataDir, "inbox")
	if err := os.MkdirAll(inbox, 0o750); err != nil {
		return "", fmt.Errorf("failed to create inbox: %w", err)
	}

	path := filepath.Join(inbox, "voice_"+strconv.FormatInt(e.now().UnixMilli(), 10)+".wav")
	if err := os.WriteFile(path, audio, 0o640); err != nil {
		return "", fmt.Errorf("failed to write capture: %w", err)
	}
	return path, nil
}

// SaveImage decodes a base64 receipt photo (data-URI prefix tolerated)
// into the receipts directory and returns its path.
func (e *Engine) SaveImage(imageData string) (string, error) {
	receipts := filepath.Join(e.dataDir, "receipts")
	if err := os.MkdirAll(receipts, 0o750); err != nil {
		return "", fmt.Errorf("failed to create receipts dir: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(stripDataURI(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	path := filepath.Join(receipts, "img_"+strconv.FormatInt(e.now().UnixMilli(), 10)+".jpg")
	if err := os.WriteFile(path, decoded, 0o640); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}

// ListRecordings returns the paths of voice captures waiting in the
// inbox. A missing inbox is an empty list, not an error.
func (e *Engine) ListRecordings() ([]string, error) {
	inbox := filepath.Join(e.dataDir, "inbox")
	entries, err := os.ReadDir(inbox)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".wav" {
			files = append(files, filepath.Join(inbox, entry.Name()))
		}
	}
	return files, nil
}

// ResolveInvoicePDF returns the expected path of a generated invoice PDF
// if a sibling collaborator has rendered one, or nil.
func (e *Engine) ResolveInvoicePDF(id string) *string {
	path := filepath.Join(e.dataDir, "invoices", id+".pdf")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return &path
}
