package session

import (
	"github.com/bizmatters/healthpath/internal/answers"
	"github.com/bizmatters/healthpath/internal/plan"
)

// Session is one user's progress through the questionnaire and its result.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	Step    int
	Answers *answers.Store
	Plan    *plan.Document

	epoch uint64
}

// New returns an empty session at the first step
func New() *Session {
	return &Session{Answers: answers.NewStore()}
}

// Epoch changes every time the session is reset. A generation started in an
// earlier epoch must not write its result into the session.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Reset discards answers, plan and position
func (s *Session) Reset() {
	s.Step = 0
	s.Answers = answers.NewStore()
	s.Plan = nil
	s.epoch++
}

// HasPlan reports whether a generated plan is attached
func (s *Session) HasPlan() bool {
	return s.Plan != nil
}
