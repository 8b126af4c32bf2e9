package group

import (
	"context"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// CreateGroupInput represents the input for group creation.
type CreateGroupInput struct {
	StoreID string
	GroupFields
}

// CreateGroupOutput represents the output of group creation.
type CreateGroupOutput struct {
	Group *entity.Group
}

// CreateGroupUseCase handles group creation logic.
type CreateGroupUseCase struct {
	groupRepo adapter.GroupRepository
	cache     adapter.MetricsCache
	locks     *StoreLocks
}

// NewCreateGroupUseCase creates a new CreateGroupUseCase instance.
func NewCreateGroupUseCase(groupRepo adapter.GroupRepository, cache adapter.MetricsCache, locks *StoreLocks) *CreateGroupUseCase {
	return &CreateGroupUseCase{
		groupRepo: groupRepo,
		cache:     cache,
		locks:     locks,
	}
}

// Execute validates and stores a new group. Names are unique per store,
// compared exactly, because records reference groups by name.
func (uc *CreateGroupUseCase) Execute(ctx context.Context, input CreateGroupInput) (*CreateGroupOutput, error) {
	group, err := buildGroup(input.StoreID, input.GroupFields)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(input.StoreID)
	defer unlock()

	// Check for a name clash
	existing, err := uc.groupRepo.List(ctx, input.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	for _, g := range existing {
		if g.Name == group.Name {
			return nil, duplicateName(group.Name)
		}
	}

	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	invalidateStore(ctx, uc.cache, input.StoreID)

	return &CreateGroupOutput{
		Group: group,
	}, nil
}
