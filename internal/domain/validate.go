package domain

import (
	"fmt"
	"strings"
)

var knownKeys = map[string]struct{}{"A": {}, "B": {}, "C": {}, "D": {}}

// Validate checks the document against the invariants required before a quiz
// may be served: at least one question, option keys drawn from A-D, and a
// correctAnswer referencing a populated option. Violations are malformed
// output, not a partial success.
func (d QuizDocument) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("%w: document has no questions", ErrMalformedOutput)
	}
	for i, q := range d {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d has empty text", ErrMalformedOutput, i)
		}
		for key := range q.Options {
			if _, ok := knownKeys[key]; !ok {
				return fmt.Errorf("%w: question %d has unknown option key %q", ErrMalformedOutput, i, key)
			}
		}
		if len(q.PopulatedKeys()) == 0 {
			return fmt.Errorf("%w: question %d has no populated options", ErrMalformedOutput, i)
		}
		if strings.TrimSpace(q.Options[q.CorrectAnswer]) == "" {
			return fmt.Errorf("%w: question %d correctAnswer %q is not a populated option", ErrMalformedOutput, i, q.CorrectAnswer)
		}
	}
	return nil
}
