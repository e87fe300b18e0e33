package player_test

import (
	"errors"
	"testing"

	"vidquiz-service/internal/domain"
	"vidquiz-service/internal/player"
)

func TestStartRejectsEmptyDocument(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(domain.QuizDocument{}); !errors.Is(err, player.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
	if session.State() != player.StateAwaitingStart {
		t.Fatalf("expected session to stay in AwaitingStart, got %v", session.State())
	}
	if len(view.questions) != 0 {
		t.Fatalf("empty document must not initialize the player")
	}
}

func TestCorrectAnswerScenario(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(singleQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	session.Select("B")
	session.Submit()

	if session.Score() != 1 {
		t.Fatalf("expected score 1, got %d", session.Score())
	}
	fb := view.lastFeedback(t)
	if !fb.Correct || fb.Selected != "B" {
		t.Fatalf("expected correct feedback for B, got %+v", fb)
	}
}

func TestIncorrectAnswerRevealsCorrectOption(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(singleQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	session.Select("A")
	session.Submit()

	if session.Score() != 0 {
		t.Fatalf("expected score 0, got %d", session.Score())
	}
	fb := view.lastFeedback(t)
	if fb.Correct || fb.CorrectAnswer != "B" {
		t.Fatalf("expected incorrect feedback highlighting B, got %+v", fb)
	}
}

func TestSubmitWithoutSelectionIsNoOp(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(singleQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	session.Submit()

	if session.State() != player.StateShowingQuestion {
		t.Fatalf("expected state unchanged, got %v", session.State())
	}
	if session.Score() != 0 || len(view.feedbacks) != 0 {
		t.Fatalf("submit without selection must not score or emit feedback")
	}
}

func TestReselectingReplacesChoice(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(singleQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	session.Select("A")
	session.Select("B")
	if session.Selected() != "B" {
		t.Fatalf("expected selection replaced with B, got %q", session.Selected())
	}
	session.Submit()
	if session.Score() != 1 {
		t.Fatalf("expected replaced selection to score, got %d", session.Score())
	}
}

func TestSelectionLockedAfterSubmit(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(singleQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	session.Select("A")
	session.Submit()
	session.Select("B")
	if session.Selected() != "A" {
		t.Fatalf("expected selection locked at A, got %q", session.Selected())
	}
}

func TestSelectIgnoresUnpopulatedKey(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	doc := domain.QuizDocument{
		{
			Question:      "Two options only",
			Options:       map[string]string{"A": "yes", "B": "no"},
			CorrectAnswer: "A",
		},
	}
	if err := session.Start(doc); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := len(view.questions[0].Options); got != 2 {
		t.Fatalf("expected 2 rendered options, got %d", got)
	}
	session.Select("D")
	if session.State() != player.StateShowingQuestion {
		t.Fatalf("expected unpopulated key to be ignored")
	}
}

func TestFullRunScoreInvariantAndResults(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(threeQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}

	answers := []string{"A", "C", "A"} // right, wrong, right
	for i, key := range answers {
		session.Select(key)
		session.Submit()
		fb := view.lastFeedback(t)
		if fb.Last != (i == len(answers)-1) {
			t.Fatalf("question %d: expected Last=%v, got %+v", i, i == len(answers)-1, fb)
		}
		session.Advance()
	}

	if session.State() != player.StateResults {
		t.Fatalf("expected results, got %v", session.State())
	}
	if view.resultScore != 2 || view.resultTotal != 3 {
		t.Fatalf("expected 2/3, got %d/%d", view.resultScore, view.resultTotal)
	}
}

func TestRestartReusesDocumentAndResetsScore(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(threeQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	for range threeQuestionDoc() {
		session.Select("A")
		session.Submit()
		session.Advance()
	}
	if session.State() != player.StateResults {
		t.Fatalf("expected results, got %v", session.State())
	}

	session.Restart()
	if session.State() != player.StateShowingQuestion || session.Index() != 0 || session.Score() != 0 {
		t.Fatalf("expected reset to question 0 score 0, got index=%d score=%d", session.Index(), session.Score())
	}
	last := view.questions[len(view.questions)-1]
	if last.Index != 0 || last.Question != threeQuestionDoc()[0].Question {
		t.Fatalf("expected the same document replayed from question 0, got %+v", last)
	}
}

func TestCloseFromAnyState(t *testing.T) {
	view := &recordingView{}
	session := player.NewSession(view)

	if err := session.Start(singleQuestionDoc()); err != nil {
		t.Fatalf("start: %v", err)
	}
	session.Select("A")
	session.Close()

	if session.State() != player.StateClosed {
		t.Fatalf("expected closed, got %v", session.State())
	}
	if !view.closed {
		t.Fatalf("expected view notified of close")
	}
	session.Select("B")
	session.Submit()
	if session.Score() != 0 {
		t.Fatalf("closed session must ignore input")
	}
}

type recordingView struct {
	questions   []player.QuestionView
	feedbacks   []player.Feedback
	resultScore int
	resultTotal int
	closed      bool
}

func (v *recordingView) ShowQuestion(q player.QuestionView) { v.questions = append(v.questions, q) }
func (v *recordingView) ShowFeedback(fb player.Feedback)    { v.feedbacks = append(v.feedbacks, fb) }
func (v *recordingView) ShowResults(score, total int) {
	v.resultScore = score
	v.resultTotal = total
}
func (v *recordingView) Closed() { v.closed = true }

func (v *recordingView) lastFeedback(t *testing.T) player.Feedback {
	t.Helper()
	if len(v.feedbacks) == 0 {
		t.Fatalf("expected feedback to be emitted")
	}
	return v.feedbacks[len(v.feedbacks)-1]
}

func singleQuestionDoc() domain.QuizDocument {
	return domain.QuizDocument{
		{
			Question:      "Q1",
			Options:       map[string]string{"A": "x", "B": "y", "C": "z", "D": "w"},
			CorrectAnswer: "B",
		},
	}
}

func threeQuestionDoc() domain.QuizDocument {
	return domain.QuizDocument{
		{Question: "First?", Options: map[string]string{"A": "1", "B": "2"}, CorrectAnswer: "A"},
		{Question: "Second?", Options: map[string]string{"A": "1", "B": "2", "C": "3"}, CorrectAnswer: "B"},
		{Question: "Third?", Options: map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"}, CorrectAnswer: "A"},
	}
}
