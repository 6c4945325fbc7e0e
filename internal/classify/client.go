// Package classify talks to the remote multimodal classifier and turns
// its loosely-typed JSON results into strongly-shaped draft records.
package classify

import (
	"context"
)

// Client defines the interface for the remote classification collaborator.
// A call carries a system instruction, the payload MIME type, and the
// base64-encoded payload; the result is the classifier's JSON document.
type Client interface {
	Analyze(ctx context.Context, systemPrompt, mimeType, payload string) (map[string]any, error)
}

// ClassificationError is a terminal classification failure: an explicit
// error from the classifier, a non-success HTTP status, or an unparsable
// response. The message is surfaced verbatim to the caller.
type ClassificationError struct {
	Message string
}

func (e *ClassificationError) Error() string {
	return e.Message
}
