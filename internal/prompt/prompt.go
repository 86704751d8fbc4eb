package prompt

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Question is a yes/no question with a default answer.
type Question struct {
	Label   string
	Hint    string
	Default bool
	Yes     string
	No      string
}

func (q Question) yesLabel() string {
	if q.Yes == "" {
		return "Yes"
	}
	return q.Yes
}

func (q Question) noLabel() string {
	if q.No == "" {
		return "No"
	}
	return q.No
}

// Answer returns the label matching v.
func (q Question) Answer(v bool) string {
	if v {
		return q.yesLabel()
	}
	return q.noLabel()
}

// Confirmer asks a question and returns the answer.
type Confirmer interface {
	Confirm(ctx context.Context, q Question) (bool, error)
}

// Defaults answers every question with its default.
type Defaults struct{}

// Confirm returns q.Default.
func (Defaults) Confirm(ctx context.Context, q Question) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return q.Default, nil
}

// Scripted answers questions by label. Unknown labels fall back to the
// question default. Every asked question is recorded.
type Scripted struct {
	mu      sync.Mutex
	answers map[string]bool
	errs    map[string]error

	Asked []Question
}

// NewScripted creates a confirmer answering from answers.
func NewScripted(answers map[string]bool) *Scripted {
	if answers == nil {
		answers = make(map[string]bool)
	}
	return &Scripted{answers: answers, errs: make(map[string]error)}
}

// Fail makes the question with label return err.
func (s *Scripted) Fail(label string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[label] = err
}

// Confirm returns the scripted answer for q.Label.
func (s *Scripted) Confirm(ctx context.Context, q Question) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Asked = append(s.Asked, q)
	if err, ok := s.errs[q.Label]; ok {
		return false, err
	}
	if v, ok := s.answers[q.Label]; ok {
		return v, nil
	}
	return q.Default, nil
}

// Labels returns the labels of the asked questions in order.
func (s *Scripted) Labels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	labels := make([]string, len(s.Asked))
	for i, q := range s.Asked {
		labels[i] = q.Label
	}
	return labels
}

// String describes the question and its default for logs.
func (q Question) String() string {
	return fmt.Sprintf("%s [%s]", q.Label, q.Answer(q.Default))
}
