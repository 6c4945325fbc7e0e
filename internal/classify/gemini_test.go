package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiFixture(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	out, _ := json.Marshal(resp)
	return string(out)
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestGeminiAnalyze(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "contents")

		_, _ = w.Write([]byte(geminiFixture("```json\n{\"intent\":\"TASK\",\"description\":\"Call Dave\"}\n```")))
	})

	doc, err := client.Analyze(context.Background(), "classify this", "audio/wav", "c29tZSBhdWRpbw==")
	require.NoError(t, err)
	assert.Equal(t, "TASK", doc["intent"])
	assert.Equal(t, "Call Dave", doc["description"])
}

func TestGeminiAnalyzeNonOKSuccessStatus(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(geminiFixture(`{"intent":"TASK","description":"Call Dave"}`)))
	})

	doc, err := client.Analyze(context.Background(), "classify this", "audio/wav", "c29tZSBhdWRpbw==")
	require.NoError(t, err, "any 2xx status carries a usable body")
	assert.Equal(t, "TASK", doc["intent"])
}

func TestGeminiAnalyzeAPIError(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exhausted", http.StatusTooManyRequests)
	})

	_, err := client.Analyze(context.Background(), "classify this", "image/jpeg", "aW1n")
	require.Error(t, err)

	var cerr *ClassificationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "status 429")
}

func TestGeminiAnalyzeEmptyCandidates(t *testing.T) {
	client := newTestGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Analyze(context.Background(), "classify this", "image/jpeg", "aW1n")
	require.Error(t, err)

	var cerr *ClassificationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "classifier returned no text", cerr.Message)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(Config{})
	require.Error(t, err)
}
