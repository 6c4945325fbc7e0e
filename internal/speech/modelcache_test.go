package speech

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fieldnote/fieldnote/internal/common"
)

func TestEnsureModelDownloadsOnce(t *testing.T) {
	var requests atomic.Int64
	payload := []byte("fake model weights")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if got := r.Header.Get("User-Agent"); got != "fieldnote/1.0" {
			t.Errorf("User-Agent = %q, want fieldnote/1.0", got)
		}
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	cache := &ModelCache{
		HTTPClient: server.Client(),
		URL:        server.URL,
		Filename:   "model.bin",
	}

	dataDir := t.TempDir()
	ctx := context.Background()

	first, err := cache.EnsureModel(ctx, dataDir)
	if err != nil {
		t.Fatalf("EnsureModel failed: %v", err)
	}

	got, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read cached model: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Cached model content mismatch")
	}

	// Second call must be a stat, not a second download.
	second, err := cache.EnsureModel(ctx, dataDir)
	if err != nil {
		t.Fatalf("Second EnsureModel failed: %v", err)
	}
	if first != second {
		t.Errorf("Paths differ across calls: %q vs %q", first, second)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("Server saw %d requests, want 1", n)
	}
}

func TestEnsureModelConcurrentFirstRuns(t *testing.T) {
	payloads := map[int64][]byte{
		1: bytes.Repeat([]byte("A"), 64),
		2: bytes.Repeat([]byte("B"), 64),
	}

	var requests atomic.Int64
	bothInFlight := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		id := requests.Add(1)
		payload := payloads[id]

		// Send half, then hold until both downloads are in flight so the
		// writes genuinely overlap.
		_, _ = w.Write(payload[:32])
		w.(http.Flusher).Flush()
		if id == 2 {
			close(bothInFlight)
		}
		<-bothInFlight
		_, _ = w.Write(payload[32:])
	}))
	defer server.Close()

	cache := &ModelCache{
		HTTPClient: server.Client(),
		URL:        server.URL,
		Filename:   "model.bin",
	}

	dataDir := t.TempDir()
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := cache.EnsureModel(context.Background(), dataDir)
			errs <- err
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("EnsureModel failed under concurrency: %v", err)
		}
	}

	got, err := os.ReadFile(filepath.Join(dataDir, "models", "model.bin"))
	if err != nil {
		t.Fatalf("Failed to read cached model: %v", err)
	}
	if !bytes.Equal(got, payloads[1]) && !bytes.Equal(got, payloads[2]) {
		t.Errorf("Cached model is torn: %q", got)
	}

	// No temp leftovers beside the model.
	entries, err := os.ReadDir(filepath.Join(dataDir, "models"))
	if err != nil {
		t.Fatalf("Failed to read models dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("models dir should hold only the model, got %v", entries)
	}
}

func TestEnsureModelHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	cache := &ModelCache{
		HTTPClient: server.Client(),
		URL:        server.URL,
		Filename:   "model.bin",
	}

	_, err := cache.EnsureModel(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("EnsureModel should fail on HTTP 404")
	}
	if !errors.Is(err, common.ErrModelDownload) {
		t.Errorf("error = %v, want ErrModelDownload", err)
	}
}

func TestEnsureModelNoPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cache := &ModelCache{
		HTTPClient: server.Client(),
		URL:        server.URL,
		Filename:   "model.bin",
	}

	dataDir := t.TempDir()
	if _, err := cache.EnsureModel(context.Background(), dataDir); err == nil {
		t.Fatal("EnsureModel should fail")
	}

	// Neither the final path nor a temp leftover may exist.
	modelsDir := filepath.Join(dataDir, "models")
	entries, err := os.ReadDir(modelsDir)
	if err != nil {
		t.Fatalf("Failed to read models dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("models dir not empty after failed download: %v", entries)
	}
}
