package domain

import (
	"errors"
	"testing"
)

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	doc := QuizDocument{
		{
			Question:      "What is discussed first?",
			Options:       map[string]string{"A": "Intro", "B": "Outro", "C": "Credits", "D": "Ads"},
			CorrectAnswer: "A",
		},
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestValidateAcceptsPartialOptionSet(t *testing.T) {
	doc := QuizDocument{
		{
			Question:      "True or false?",
			Options:       map[string]string{"A": "True", "B": "False"},
			CorrectAnswer: "B",
		},
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected partial option set to validate, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		doc  QuizDocument
	}{
		{"empty document", QuizDocument{}},
		{"empty question text", QuizDocument{
			{Question: "  ", Options: map[string]string{"A": "x"}, CorrectAnswer: "A"},
		}},
		{"unknown option key", QuizDocument{
			{Question: "Q", Options: map[string]string{"E": "x"}, CorrectAnswer: "E"},
		}},
		{"no populated options", QuizDocument{
			{Question: "Q", Options: map[string]string{"A": " "}, CorrectAnswer: "A"},
		}},
		{"correctAnswer not in options", QuizDocument{
			{Question: "Q", Options: map[string]string{"A": "x", "B": "y"}, CorrectAnswer: "C"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.doc.Validate()
			if !errors.Is(err, ErrMalformedOutput) {
				t.Fatalf("expected ErrMalformedOutput, got %v", err)
			}
		})
	}
}

func TestPopulatedKeysPreservesDisplayOrder(t *testing.T) {
	q := QuizQuestion{
		Question:      "Q",
		Options:       map[string]string{"D": "four", "B": "two", "A": "one"},
		CorrectAnswer: "A",
	}
	keys := q.PopulatedKeys()
	want := []string{"A", "B", "D"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}
