package flow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/formflow-inc/formflow-engine/pkg/apperrors"
	"github.com/formflow-inc/formflow-engine/pkg/models"
)

// Session walks a submission through a flow one visible question at a
// time. Responses are immutable once the next question is shown; the one
// exception is Amend, which refines the most recent answer in place.
type Session struct {
	flow      *models.Flow
	responses []models.Response
	current   int
	completed bool
	startedAt time.Time
}

// NewSession starts a session positioned at the flow's first visible
// question. A flow with no visible questions starts already completed.
func NewSession(f *models.Flow) *Session {
	s := &Session{flow: f, startedAt: time.Now()}
	idx, ok := NextQuestion(f.Questions, 0, nil)
	if !ok {
		s.completed = true
		return s
	}
	s.current = idx
	return s
}

// Completed reports whether every visible question has been answered.
func (s *Session) Completed() bool { return s.completed }

// Current returns the question currently shown.
func (s *Session) Current() (*models.Question, error) {
	if s.completed {
		return nil, apperrors.ErrFlowComplete
	}
	return &s.flow.Questions[s.current], nil
}

// Answer validates the value against the current question's rules,
// records it, and advances to the next visible question. Advancing
// re-evaluates visibility because the new answer may reveal or hide
// later questions.
func (s *Session) Answer(value models.AnswerValue) ([]Violation, error) {
	q, err := s.Current()
	if err != nil {
		return nil, err
	}
	if violations := CheckRules(q, value); len(violations) > 0 {
		return violations, nil
	}

	s.responses = append(s.responses, models.Response{QuestionID: q.ID, Value: value})

	idx, ok := NextQuestion(s.flow.Questions, s.current+1, s.responses)
	if !ok {
		s.completed = true
		return nil, nil
	}
	s.current = idx
	return nil, nil
}

// Amend replaces the value of the most recently recorded response. This is
// the in-place refinement path used when extraction improves an answer to
// the same field; earlier responses stay immutable.
func (s *Session) Amend(questionID string, value models.AnswerValue) error {
	if len(s.responses) == 0 {
		return apperrors.ErrNotFound
	}
	last := &s.responses[len(s.responses)-1]
	if last.QuestionID != questionID {
		return fmt.Errorf("only the latest answer (%s) can be amended: %w", last.QuestionID, apperrors.ErrImmutableResponse)
	}
	last.Value = value
	return nil
}

// Responses returns a copy of the responses recorded so far.
func (s *Session) Responses() []models.Response {
	out := make([]models.Response, len(s.responses))
	copy(out, s.responses)
	return out
}

// Progress reports answered and currently visible question counts for
// display. Visible is recomputed on every call.
func (s *Session) Progress() (answered, visible int) {
	return len(s.responses), VisibleCount(s.flow.Questions, s.responses)
}

// Submission finalizes the session into an append-only submission record.
func (s *Session) Submission() (*models.Submission, error) {
	if !s.completed {
		return nil, apperrors.ErrFlowIncomplete
	}
	now := time.Now()
	return &models.Submission{
		ID:          uuid.New(),
		FlowID:      s.flow.ID,
		Responses:   s.Responses(),
		Completed:   true,
		StartedAt:   s.startedAt,
		CompletedAt: &now,
	}, nil
}
