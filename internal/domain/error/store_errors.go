package error

import "errors"

// Store selection errors.
var (
	// ErrStoreRequired is returned when a request carries no store.
	ErrStoreRequired = errors.New("store not informed")

	// ErrStoreNotFound is returned when the store id is not in the store list.
	ErrStoreNotFound = errors.New("invalid store")
)

// StoreErrorCode defines error codes for store errors.
type StoreErrorCode string

const (
	ErrCodeStoreRequired StoreErrorCode = "STO-010001"
	ErrCodeStoreNotFound StoreErrorCode = "STO-010002"
)

// StoreError represents a store selection error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
