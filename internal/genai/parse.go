package genai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vidquiz-service/internal/domain"
)

// SanitizeModelOutput strips whatever the backend wrapped around the JSON
// array: code-fence markers, leading or trailing prose. Backends are not
// guaranteed to honor "output only JSON", so this unwrapping is mandatory
// before parsing.
func SanitizeModelOutput(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end < start {
		return "", errors.New("no JSON array in output")
	}
	return s[start : end+1], nil
}

// ParseQuizDocument runs the sanitize-then-parse-then-validate pipeline over
// raw backend output. Any failure is malformed output, never a partially
// usable document.
func ParseQuizDocument(raw string) (domain.QuizDocument, error) {
	payload, err := SanitizeModelOutput(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}
	var doc domain.QuizDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedOutput, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
