package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalPeriodRequired is returned when a goal has no period label.
	ErrGoalPeriodRequired = errors.New("goal period is required")

	// ErrInvalidRevenueTarget is returned when the revenue target is missing or not positive.
	ErrInvalidRevenueTarget = errors.New("invalid revenue target")

	// ErrInvalidGoalCostTarget is returned when the CMC target is outside 0..100.
	ErrInvalidGoalCostTarget = errors.New("goal cost target must be between 0 and 100")

	// ErrInvalidAverageTicket is returned when the average ticket is negative.
	ErrInvalidAverageTicket = errors.New("invalid average ticket")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Resource errors (01XXXX)
	ErrCodeGoalNotFound GoalErrorCode = "GOL-010001"

	// Validation errors (02XXXX)
	ErrCodeGoalPeriodRequired    GoalErrorCode = "GOL-020001"
	ErrCodeInvalidRevenueTarget  GoalErrorCode = "GOL-020002"
	ErrCodeInvalidGoalCostTarget GoalErrorCode = "GOL-020003"
	ErrCodeInvalidAverageTicket  GoalErrorCode = "GOL-020004"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
