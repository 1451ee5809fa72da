package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripCodeFences removes Markdown code-fence markers that chat models wrap
// around JSON output ("```json ... ```" or bare "```").
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Language tag on the opening fence ("json", "JSON").
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if len(firstLine) <= 8 && !strings.ContainsAny(firstLine, "{}") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject cuts the first balanced-looking JSON object out of raw
// model output. Models occasionally preface the object with prose; anything
// outside the outermost braces is noise.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in model output")
	}
	return s[start : end+1], nil
}

// decodeSpecJSON parses the model's (possibly fenced) JSON into dst.
func decodeSpecJSON(text string, dst any) error {
	cleaned := stripCodeFences(text)
	obj, err := extractJSONObject(cleaned)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), dst); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	return nil
}
