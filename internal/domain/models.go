package domain

import "strings"

// OptionKeys is the closed vocabulary of choice keys, in display order.
// A question may populate only a subset; absent keys mean "no such option".
var OptionKeys = []string{"A", "B", "C", "D"}

// QuizQuestion is a single multiple-choice question. Options maps a choice
// key (A-D) to its text; CorrectAnswer references one populated option.
type QuizQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
}

// QuizDocument is an ordered sequence of questions. It is immutable once
// produced; consumers must not mutate it.
type QuizDocument []QuizQuestion

// SourceMaterial is what a source strategy hands to the generative backend:
// either transcript text or a direct media reference.
type SourceMaterial struct {
	Transcript string
	MediaURL   string
}

// Empty reports whether the material carries nothing usable.
func (m SourceMaterial) Empty() bool {
	return strings.TrimSpace(m.Transcript) == "" && m.MediaURL == ""
}

// PopulatedKeys returns the option keys that carry non-empty text, in
// display order.
func (q QuizQuestion) PopulatedKeys() []string {
	keys := make([]string, 0, len(OptionKeys))
	for _, k := range OptionKeys {
		if strings.TrimSpace(q.Options[k]) != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
