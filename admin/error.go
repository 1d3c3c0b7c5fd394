package admin

import "fmt"

type ErrorReason string

const (
	REASON_LOAD_FAILED   ErrorReason = "LOAD_FAILED"
	REASON_TOGGLE_FAILED ErrorReason = "TOGGLE_FAILED"
	REASON_ROW_NOT_FOUND ErrorReason = "ROW_NOT_FOUND"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newAdminError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewLoadFailedError(message string, cause error) *Error {
	return newAdminError(REASON_LOAD_FAILED, message, cause)
}

func NewToggleFailedError(message string, cause error) *Error {
	return newAdminError(REASON_TOGGLE_FAILED, message, cause)
}

func NewRowNotFoundError(message string) *Error {
	return newAdminError(REASON_ROW_NOT_FOUND, message, nil)
}
