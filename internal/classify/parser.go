package classify

import (
	"encoding/json"
	"strings"
)

// cleanMarkdownWrapper strips a fenced code block the model sometimes
// wraps its JSON in.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		// Drop the opening fence line, which may carry a language tag.
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```json")
			content = strings.TrimPrefix(content, "```")
		}
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// parseClassifierJSON parses the classifier's text output into a document.
func parseClassifierJSON(content string) (map[string]any, error) {
	content = cleanMarkdownWrapper(content)

	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &ClassificationError{Message: "classifier returned invalid JSON"}
	}

	return doc, nil
}
