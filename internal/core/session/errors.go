package session

import "github.com/rdv360/session-gateway/internal/core/errnorm"

// ActionError is returned by store actions. Message is already normalized
// for display; Err keeps the cause for errors.Is and errors.As.
type ActionError struct {
	Message string
	Err     error
}

func newActionError(err error) *ActionError {
	return &ActionError{Message: errnorm.NormalizeError(err), Err: err}
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
