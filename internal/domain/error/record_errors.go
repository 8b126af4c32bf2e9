// Package error defines domain-specific errors for the CMC server.
package error

import "errors"

// Daily record domain errors.
var (
	// ErrRecordDateRequired is returned when a record is built without a date.
	ErrRecordDateRequired = errors.New("record date is required")

	// ErrInvalidRecordDate is returned when the record date cannot be parsed.
	ErrInvalidRecordDate = errors.New("invalid record date, expected DD/MM/YYYY")

	// ErrAmountRequired is returned when a purchase has no value.
	ErrAmountRequired = errors.New("amount is required")

	// ErrInvalidAmount is returned when a money value cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when a money value is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidPeriod is returned when a period key cannot be parsed.
	ErrInvalidPeriod = errors.New("invalid period, expected M-YYYY")

	// ErrRecordNotFound is returned when no record exists for the requested day.
	ErrRecordNotFound = errors.New("record not found")

	// ErrTagTooLong is returned when a group or supplier tag exceeds the column size.
	ErrTagTooLong = errors.New("tag is too long")
)

// RecordErrorCode defines error codes for daily record errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecordErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecordDateRequired RecordErrorCode = "REC-010001"
	ErrCodeInvalidRecordDate  RecordErrorCode = "REC-010002"
	ErrCodeAmountRequired     RecordErrorCode = "REC-010003"
	ErrCodeInvalidAmount      RecordErrorCode = "REC-010004"
	ErrCodeNegativeAmount     RecordErrorCode = "REC-010005"
	ErrCodeInvalidPeriod      RecordErrorCode = "REC-010006"
	ErrCodeTagTooLong         RecordErrorCode = "REC-010007"

	// Resource errors (02XXXX)
	ErrCodeRecordNotFound RecordErrorCode = "REC-020001"
)

// RecordError represents a daily record error with code and message.
type RecordError struct {
	Code    RecordErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError with the given code and message.
func NewRecordError(code RecordErrorCode, message string, err error) *RecordError {
	return &RecordError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
