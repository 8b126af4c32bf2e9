package error

import "errors"

// Supplier domain errors.
var (
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrSupplierNameRequired = errors.New("supplier name is required")
	ErrInvalidSupplierEmail = errors.New("invalid supplier email")
)

// SupplierErrorCode defines error codes for supplier errors.
type SupplierErrorCode string

const (
	ErrCodeSupplierNotFound     SupplierErrorCode = "SUP-010001"
	ErrCodeSupplierNameRequired SupplierErrorCode = "SUP-020001"
	ErrCodeInvalidSupplierEmail SupplierErrorCode = "SUP-020002"
)

// SupplierError represents a supplier error with code and message.
type SupplierError struct {
	Code    SupplierErrorCode
	Message string
	Err     error
}

func (e *SupplierError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SupplierError) Unwrap() error {
	return e.Err
}

// NewSupplierError creates a new SupplierError.
func NewSupplierError(code SupplierErrorCode, message string, err error) *SupplierError {
	return &SupplierError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
