package error

import (
	"errors"
	"testing"
)

func TestTypedErrors_WrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "record",
			err:      NewRecordError(ErrCodeInvalidAmount, "amount must be a number", ErrInvalidAmount),
			sentinel: ErrInvalidAmount,
			message:  "amount must be a number: invalid amount",
		},
		{
			name:     "store",
			err:      NewStoreError(ErrCodeStoreNotFound, "Loja inválida", ErrStoreNotFound),
			sentinel: ErrStoreNotFound,
			message:  "Loja inválida: invalid store",
		},
		{
			name:     "group",
			err:      NewGroupError(ErrCodeGroupNotFound, "group not found", ErrGroupNotFound),
			sentinel: ErrGroupNotFound,
			message:  "group not found: group not found",
		},
		{
			name:     "supplier",
			err:      NewSupplierError(ErrCodeSupplierNameRequired, "name is required", ErrSupplierNameRequired),
			sentinel: ErrSupplierNameRequired,
			message:  "name is required: supplier name is required",
		},
		{
			name:     "goal",
			err:      NewGoalError(ErrCodeGoalPeriodRequired, "period is required", ErrGoalPeriodRequired),
			sentinel: ErrGoalPeriodRequired,
			message:  "period is required: goal period is required",
		},
		{
			name:     "auth",
			err:      NewAuthError(ErrCodeForbidden, "admin only", ErrForbidden),
			sentinel: ErrForbidden,
			message:  "admin only: insufficient permissions",
		},
		{
			name:     "dashboard",
			err:      NewDashboardError(ErrCodeMissingPeriod, "period is required", ErrMissingPeriod),
			sentinel: ErrMissingPeriod,
			message:  "period is required: period is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func TestTypedErrors_WithoutCause(t *testing.T) {
	err := NewRecordError(ErrCodeRecordNotFound, "no purchase on 05/03/2025", nil)

	if err.Error() != "no purchase on 05/03/2025" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
	}
}

func TestTypedErrors_As(t *testing.T) {
	var wrapped error = NewGroupError(ErrCodeInvalidCostTarget, "bad target", ErrInvalidCostTarget)

	var groupErr *GroupError
	if !errors.As(wrapped, &groupErr) {
		t.Fatal("errors.As failed for *GroupError")
	}
	if groupErr.Code != ErrCodeInvalidCostTarget {
		t.Errorf("Code = %s, want %s", groupErr.Code, ErrCodeInvalidCostTarget)
	}

	var recordErr *RecordError
	if errors.As(wrapped, &recordErr) {
		t.Error("group error must not match *RecordError")
	}
}
