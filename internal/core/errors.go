package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers classify failures with errors.Is against
// these; the HTTP layer maps them to status codes.
var (
	ErrInvalidYear  = errors.New("invalid year")
	ErrDataNotFound = errors.New("data not found")
	ErrDataLoad     = errors.New("data load failed")
	ErrCalculation  = errors.New("calculation failed")
)

// Error carries a user-facing message and optional details alongside its
// kind. All service failures are recoverable at the request boundary.
type Error struct {
	kind    error
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

// Unwrap exposes the kind so errors.Is(err, core.ErrDataNotFound) works.
func (e *Error) Unwrap() error {
	return e.kind
}

// InvalidYearf builds an InvalidYear error with a formatted message.
func InvalidYearf(details, format string, args ...any) *Error {
	return &Error{kind: ErrInvalidYear, Message: fmt.Sprintf(format, args...), Details: details}
}

// NotFoundf builds a DataNotFound error with a formatted message.
func NotFoundf(details, format string, args ...any) *Error {
	return &Error{kind: ErrDataNotFound, Message: fmt.Sprintf(format, args...), Details: details}
}

// LoadErrorf builds a DataLoad error with a formatted message.
func LoadErrorf(details, format string, args ...any) *Error {
	return &Error{kind: ErrDataLoad, Message: fmt.Sprintf(format, args...), Details: details}
}

// CalculationErrorf builds a Calculation error with a formatted message.
func CalculationErrorf(details, format string, args ...any) *Error {
	return &Error{kind: ErrCalculation, Message: fmt.Sprintf(format, args...), Details: details}
}
