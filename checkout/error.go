package checkout

import "fmt"

type ErrorReason string

const (
	REASON_INVALID_TRANSITION     ErrorReason = "INVALID_TRANSITION"
	REASON_MISSING_CONTACT_FIELDS ErrorReason = "MISSING_CONTACT_FIELDS"
	REASON_INVALID_CATEGORY       ErrorReason = "INVALID_CATEGORY"
	REASON_INVALID_PAYMENT        ErrorReason = "INVALID_PAYMENT"
	REASON_SUBMIT_IN_FLIGHT       ErrorReason = "SUBMIT_IN_FLIGHT"
	REASON_SUBMIT_FAILED          ErrorReason = "SUBMIT_FAILED"
	REASON_SESSION_NOT_FOUND      ErrorReason = "SESSION_NOT_FOUND"
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

func newCheckoutError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidTransitionError(action string, from Stage) *Error {
	return newCheckoutError(REASON_INVALID_TRANSITION, fmt.Sprintf("Cannot %s while in stage %s", action, from), nil)
}

func NewMissingContactFieldsError(message string, cause error) *Error {
	return newCheckoutError(REASON_MISSING_CONTACT_FIELDS, message, cause)
}

func NewInvalidCategoryError(message string, cause error) *Error {
	return newCheckoutError(REASON_INVALID_CATEGORY, message, cause)
}

func NewInvalidPaymentError(message string, cause error) *Error {
	return newCheckoutError(REASON_INVALID_PAYMENT, message, cause)
}

func NewSubmitInFlightError() *Error {
	return newCheckoutError(REASON_SUBMIT_IN_FLIGHT, "A submission is already in progress", nil)
}

// NewSubmitFailedError carries the message shown to the registrant verbatim.
func NewSubmitFailedError(message string, cause error) *Error {
	return newCheckoutError(REASON_SUBMIT_FAILED, message, cause)
}

func NewSessionNotFoundError(id string) *Error {
	return newCheckoutError(REASON_SESSION_NOT_FOUND, fmt.Sprintf("Checkout session %q not found", id), nil)
}
