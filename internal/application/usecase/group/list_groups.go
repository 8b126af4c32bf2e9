package group

import (
	"context"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// ListGroupsInput represents the input for listing groups.
type ListGroupsInput struct {
	StoreID string
}

// ListGroupsOutput represents the output of listing groups.
type ListGroupsOutput struct {
	Groups []*entity.Group
}

// ListGroupsUseCase handles listing the groups of a store.
type ListGroupsUseCase struct {
	groupRepo adapter.GroupRepository
}

// NewListGroupsUseCase creates a new ListGroupsUseCase instance.
func NewListGroupsUseCase(groupRepo adapter.GroupRepository) *ListGroupsUseCase {
	return &ListGroupsUseCase{
		groupRepo: groupRepo,
	}
}

// Execute returns the store's groups ordered by ID.
func (uc *ListGroupsUseCase) Execute(ctx context.Context, input ListGroupsInput) (*ListGroupsOutput, error) {
	groups, err := uc.groupRepo.List(ctx, input.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return &ListGroupsOutput{
		Groups: groups,
	}, nil
}
