package services

import (
	"fmt"
	"strings"

	"github.com/may5296007/Projetweb2/internal/models"
)

// ActivationError is returned when a form with fewer than
// models.MinQuestionsToActivate questions is activated. Missing tells
// the caller the exact shortfall so the UI can surface it.
type ActivationError struct {
	QuestionCount int
	Missing       int
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("form has %d questions, %d more required to activate (minimum %d)",
		e.QuestionCount, e.Missing, models.MinQuestionsToActivate)
}

// IncompleteSubmissionError names every required question left without
// a non-blank answer.
type IncompleteSubmissionError struct {
	MissingQuestionIDs []uint
}

func (e *IncompleteSubmissionError) Error() string {
	ids := make([]string, len(e.MissingQuestionIDs))
	for i, id := range e.MissingQuestionIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%d required question(s) unanswered: %s",
		len(e.MissingQuestionIDs), strings.Join(ids, ", "))
}

// MissingCommentError is returned when a revision is requested without
// comment text.
type MissingCommentError struct{}

func (e *MissingCommentError) Error() string {
	return "a comment is required when requesting a revision"
}

// TransitionError reports an illegal plan lifecycle move; the plan's
// status is left unchanged.
type TransitionError struct {
	From  string
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a plan in status %q", e.Event, e.From)
}

// NotFoundError covers absent form/plan/user ids.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ExportError wraps a PDF render or store failure. Submission must not
// change plan state when it occurs, so the teacher can retry.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return "failed to export plan document: " + e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
