package group

import (
	"context"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// ReplaceGroupsItem is one group of a replacement list. A zero ID asks the
// repository for a fresh one.
type ReplaceGroupsItem struct {
	ID uint
	GroupFields
}

// ReplaceGroupsInput represents the input for replacing the group list.
type ReplaceGroupsInput struct {
	StoreID string
	Groups  []ReplaceGroupsItem
}

// ReplaceGroupsOutput represents the output of replacing the group list.
type ReplaceGroupsOutput struct {
	Groups []*entity.Group
}

// ReplaceGroupsUseCase swaps a store's whole group list.
type ReplaceGroupsUseCase struct {
	groupRepo adapter.GroupRepository
	cache     adapter.MetricsCache
	locks     *StoreLocks
}

// NewReplaceGroupsUseCase creates a new ReplaceGroupsUseCase instance.
func NewReplaceGroupsUseCase(groupRepo adapter.GroupRepository, cache adapter.MetricsCache, locks *StoreLocks) *ReplaceGroupsUseCase {
	return &ReplaceGroupsUseCase{
		groupRepo: groupRepo,
		cache:     cache,
		locks:     locks,
	}
}

// Execute validates every item before anything is written.
func (uc *ReplaceGroupsUseCase) Execute(ctx context.Context, input ReplaceGroupsInput) (*ReplaceGroupsOutput, error) {
	groups := make([]*entity.Group, 0, len(input.Groups))
	seen := make(map[string]bool, len(input.Groups))
	usedIDs := make(map[uint]bool, len(input.Groups))

	for _, item := range input.Groups {
		group, err := buildGroup(input.StoreID, item.GroupFields)
		if err != nil {
			return nil, err
		}
		if seen[group.Name] {
			return nil, duplicateName(group.Name)
		}
		seen[group.Name] = true

		// A repeated ID is treated as a new group.
		if item.ID != 0 && !usedIDs[item.ID] {
			group.ID = item.ID
			usedIDs[item.ID] = true
		}
		groups = append(groups, group)
	}

	unlock := uc.locks.Lock(input.StoreID)
	defer unlock()

	if err := uc.groupRepo.ReplaceAll(ctx, input.StoreID, groups); err != nil {
		return nil, fmt.Errorf("failed to replace groups: %w", err)
	}
	invalidateStore(ctx, uc.cache, input.StoreID)

	return &ReplaceGroupsOutput{
		Groups: groups,
	}, nil
}
