package player

import (
	"errors"

	"vidquiz-service/internal/domain"
)

// State enumerates where a session is in the question loop.
type State int

const (
	StateAwaitingStart State = iota
	StateShowingQuestion
	StateAnswerSelected
	StateSubmitted
	StateResults
	StateClosed
)

// ErrEmptyQuiz is returned when Start receives a document with no questions;
// the session stays in AwaitingStart.
var ErrEmptyQuiz = errors.New("quiz document is empty")

// ErrAlreadyStarted is returned when Start is called on a live session.
var ErrAlreadyStarted = errors.New("quiz session already started")

// OptionView is one renderable choice.
type OptionView struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// QuestionView is what the rendering layer needs to show one question.
// Only populated options are included, in A-D order. Last signals that the
// advance action leads to results rather than another question.
type QuestionView struct {
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	Question string       `json:"question"`
	Options  []OptionView `json:"options"`
	Last     bool         `json:"last"`
}

// Feedback is emitted after a submission: whether the pick was right, which
// key to highlight as correct when it was not, and the running score.
type Feedback struct {
	Correct       bool   `json:"correct"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	Last          bool   `json:"last"`
}

// View receives state transitions from the session. Keeping rendering behind
// this interface lets the machine run without any UI attached.
type View interface {
	ShowQuestion(q QuestionView)
	ShowFeedback(fb Feedback)
	ShowResults(score, total int)
	Closed()
}

// Session drives a user through one quiz: question presentation, answer
// selection, scoring, results. It owns its transient state and never mutates
// the document it was started with.
type Session struct {
	view     View
	doc      domain.QuizDocument
	state    State
	index    int
	score    int
	selected string
}

func NewSession(view View) *Session {
	return &Session{view: view, state: StateAwaitingStart}
}

func (s *Session) State() State     { return s.state }
func (s *Session) Index() int       { return s.index }
func (s *Session) Score() int       { return s.score }
func (s *Session) Selected() string { return s.selected }

// Start enters the question loop with a validated document. An empty
// document is an error and the session remains offerable.
func (s *Session) Start(doc domain.QuizDocument) error {
	if s.state != StateAwaitingStart {
		return ErrAlreadyStarted
	}
	if len(doc) == 0 {
		return ErrEmptyQuiz
	}
	s.doc = doc
	s.index = 0
	s.score = 0
	s.selected = ""
	s.state = StateShowingQuestion
	s.view.ShowQuestion(s.questionView())
	return nil
}

// Select records the chosen option key. Re-selecting simply replaces the
// previous choice. Selections are ignored once the question is submitted,
// for keys the question does not populate, and outside the question loop.
func (s *Session) Select(key string) {
	if s.state != StateShowingQuestion && s.state != StateAnswerSelected {
		return
	}
	q := s.doc[s.index]
	populated := false
	for _, k := range q.PopulatedKeys() {
		if k == key {
			populated = true
			break
		}
	}
	if !populated {
		return
	}
	s.selected = key
	s.state = StateAnswerSelected
}

// Submit scores the current selection and locks the question. Without a
// selection it is a no-op.
func (s *Session) Submit() {
	if s.state != StateAnswerSelected {
		return
	}
	q := s.doc[s.index]
	correct := s.selected == q.CorrectAnswer
	if correct {
		s.score++
	}
	s.state = StateSubmitted
	s.view.ShowFeedback(Feedback{
		Correct:       correct,
		Selected:      s.selected,
		CorrectAnswer: q.CorrectAnswer,
		Score:         s.score,
		Last:          s.lastQuestion(),
	})
}

// Advance moves to the next question, or to results after the last one.
func (s *Session) Advance() {
	if s.state != StateSubmitted {
		return
	}
	if s.index+1 < len(s.doc) {
		s.index++
		s.selected = ""
		s.state = StateShowingQuestion
		s.view.ShowQuestion(s.questionView())
		return
	}
	s.state = StateResults
	s.view.ShowResults(s.score, len(s.doc))
}

// Restart replays the same document from the first question with the score
// reset. Only valid from the results screen.
func (s *Session) Restart() {
	if s.state != StateResults {
		return
	}
	s.index = 0
	s.score = 0
	s.selected = ""
	s.state = StateShowingQuestion
	s.view.ShowQuestion(s.questionView())
}

// Close tears the session down from any state.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	s.doc = nil
	s.selected = ""
	s.state = StateClosed
	s.view.Closed()
}

func (s *Session) questionView() QuestionView {
	q := s.doc[s.index]
	keys := q.PopulatedKeys()
	options := make([]OptionView, 0, len(keys))
	for _, k := range keys {
		options = append(options, OptionView{Key: k, Text: q.Options[k]})
	}
	return QuestionView{
		Index:    s.index,
		Total:    len(s.doc),
		Question: q.Question,
		Options:  options,
		Last:     s.lastQuestion(),
	}
}

func (s *Session) lastQuestion() bool {
	return s.index == len(s.doc)-1
}
