package error

import "errors"

// Group domain errors.
var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")

	// ErrGroupNameRequired is returned when a group has no name.
	ErrGroupNameRequired = errors.New("group name is required")

	// ErrGroupNameTooLong is returned when a group name exceeds 100 characters.
	ErrGroupNameTooLong = errors.New("group name too long")

	// ErrInvalidGroupColor is returned when a color is not a #rrggbb value.
	ErrInvalidGroupColor = errors.New("invalid group color")

	// ErrInvalidCostTarget is returned when a CMC target is outside 0..100.
	ErrInvalidCostTarget = errors.New("cost target must be between 0 and 100")

	// ErrDuplicateGroupName is returned when two groups of a store share a name.
	ErrDuplicateGroupName = errors.New("group name already exists")
)

// GroupErrorCode defines error codes for group errors.
// Format: GRP-XXYYYY where XX is category and YYYY is specific error.
type GroupErrorCode string

const (
	// Resource errors (01XXXX)
	ErrCodeGroupNotFound      GroupErrorCode = "GRP-010001"
	ErrCodeDuplicateGroupName GroupErrorCode = "GRP-010002"

	// Validation errors (02XXXX)
	ErrCodeGroupNameRequired  GroupErrorCode = "GRP-020001"
	ErrCodeGroupNameTooLong   GroupErrorCode = "GRP-020002"
	ErrCodeInvalidGroupColor  GroupErrorCode = "GRP-020003"
	ErrCodeInvalidCostTarget  GroupErrorCode = "GRP-020004"
	ErrCodeMissingGroupFields GroupErrorCode = "GRP-020005"
)

// GroupError represents a group error with code and message.
type GroupError struct {
	Code    GroupErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GroupError) Unwrap() error {
	return e.Err
}

// NewGroupError creates a new GroupError with the given code and message.
func NewGroupError(code GroupErrorCode, message string, err error) *GroupError {
	return &GroupError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
