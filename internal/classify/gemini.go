package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// geminiClient implements Client against the Gemini generateContent API.
type geminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// Config holds classifier client settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed classifier client.
func NewGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute // audio payloads can be slow
	}

	return &geminiClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze sends one classification request. Any non-success status or
// unparsable body is a terminal ClassificationError for this call.
func (c *geminiClient) Analyze(ctx context.Context, systemPrompt, mimeType, payload string) (map[string]any, error) {
	requestBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": systemPrompt},
					{"inline_data": map[string]string{
						"mime_type": mimeType,
						"data":      payload,
					}},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClassificationError{Message: fmt.Sprintf("classifier request failed: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClassificationError{Message: fmt.Sprintf("failed to read classifier response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ClassificationError{Message: fmt.Sprintf("classifier API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ClassificationError{Message: fmt.Sprintf("failed to parse classifier response: %v", err)}
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return nil, &ClassificationError{Message: "classifier returned no text"}
	}

	return parseClassifierJSON(response.Candidates[0].Content.Parts[0].Text)
}
