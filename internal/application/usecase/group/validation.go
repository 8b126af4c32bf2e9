// Package group contains purchase group use cases.
package group

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var maxTarget = decimal.NewFromInt(100)

// GroupFields are the user supplied attributes of a group.
type GroupFields struct {
	Name              string
	Color             string
	CostTargetPercent *decimal.Decimal
	Icon              string
}

// buildGroup validates the fields and returns a group with defaults applied.
func buildGroup(storeID string, fields GroupFields) (*entity.Group, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNameRequired,
			"group name is required",
			domainerror.ErrGroupNameRequired,
		)
	}
	if len([]rune(name)) > entity.MaxTagLength {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNameTooLong,
			"group name must have at most 100 characters",
			domainerror.ErrGroupNameTooLong,
		)
	}

	color := strings.TrimSpace(fields.Color)
	if color != "" && !colorPattern.MatchString(color) {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeInvalidGroupColor,
			"color must be a hex value like #3b82f6",
			domainerror.ErrInvalidGroupColor,
		)
	}

	if t := fields.CostTargetPercent; t != nil && (t.IsNegative() || t.GreaterThan(maxTarget)) {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeInvalidCostTarget,
			"cost target must be between 0 and 100",
			domainerror.ErrInvalidCostTarget,
		)
	}

	return entity.NewGroup(storeID, name, strings.ToLower(color), fields.CostTargetPercent, strings.TrimSpace(fields.Icon)), nil
}

func duplicateName(name string) error {
	return domainerror.NewGroupError(
		domainerror.ErrCodeDuplicateGroupName,
		"a group named "+name+" already exists",
		domainerror.ErrDuplicateGroupName,
	)
}
