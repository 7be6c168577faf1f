package service

import "errors"

// Domain error kinds. Match with errors.Is; anything else coming out of the
// service is an infrastructure (store) failure.
var (
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrNotEnrolled     = errors.New("not enrolled")
	ErrInvalidGrade    = errors.New("invalid grade")
)

type DomainError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newDomainError(kind error, msg string, cause error) *DomainError {
	return &DomainError{Kind: kind, Message: msg, Cause: cause}
}

// IsDomainError reports whether err is one of the business-rule failures.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
