package core

import "fmt"

// UserError is a user-facing failure. The CLI prints Message verbatim on a
// single line and exits with status 0.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError wraps a prescribed user-facing message.
func NewUserError(message string) error {
	return &UserError{Message: message}
}

// categorized internal errors, matched on the wrapped cause with errors.As
// where callers care and printed with a nonzero exit otherwise.

// RepositoryError reports a failure of repository discovery or layout.
func RepositoryError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("repository: %s", msg)
	}
	return fmt.Errorf("repository: %s: %w", msg, err)
}

// ObjectError reports a failure in the object store.
func ObjectError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("object: %s", msg)
	}
	return fmt.Errorf("object: %s: %w", msg, err)
}

// RefError reports a failure reading or writing branch refs or HEAD.
func RefError(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("ref: %s", msg)
	}
	return fmt.Errorf("ref: %s: %w", msg, err)
}
