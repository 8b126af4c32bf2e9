package metrics

import "github.com/shopspring/decimal"

// TargetState classifies a ratio against its target.
type TargetState string

const (
	TargetAbove  TargetState = "above"
	TargetWithin TargetState = "within"
	TargetNoData TargetState = "no_data"
)

// TargetStatus is the outcome of comparing a cost ratio with a target.
type TargetStatus struct {
	Status TargetState
	Within bool
	// Diff is ratio minus target; positive means above target.
	Diff decimal.Decimal
}

// WithinTarget reports whether ratio <= target. Being exactly at the target
// counts as within.
func WithinTarget(ratio, target decimal.Decimal) bool {
	return ratio.LessThanOrEqual(target)
}

// EvaluateTarget compares ratio with target. Without revenue a ratio of zero
// carries no information, so the state is no_data.
func EvaluateTarget(ratio, target, revenue decimal.Decimal) TargetStatus {
	within := WithinTarget(ratio, target)

	state := TargetNoData
	switch {
	case !within:
		state = TargetAbove
	case revenue.IsPositive():
		state = TargetWithin
	}

	return TargetStatus{
		Status: state,
		Within: within,
		Diff:   ratio.Sub(target),
	}
}
