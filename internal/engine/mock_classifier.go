package engine

import (
	"context"
	"sync"
)

// MockClassifier is a test implementation of classify.Client that returns
// a canned document and records every call it sees.
type MockClassifier struct {
	Doc   map[string]any
	Err   error
	calls []MockClassifierCall
	mu    sync.Mutex
}

// MockClassifierCall records one classification request.
type MockClassifierCall struct {
	SystemPrompt string
	MimeType     string
	Payload      string
}

// Analyze returns the canned result and records the call.
func (m *MockClassifier) Analyze(_ context.Context, systemPrompt, mimeType, payload string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockClassifierCall{
		SystemPrompt: systemPrompt,
		MimeType:     mimeType,
		Payload:      payload,
	})

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Doc, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockClassifier) Calls() []MockClassifierCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockClassifierCall(nil), m.calls...)
}
