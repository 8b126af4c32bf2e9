package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// DeleteGroupInput represents the input for group deletion.
type DeleteGroupInput struct {
	StoreID string
	GroupID uint
}

// DeleteGroupOutput represents the output of group deletion.
type DeleteGroupOutput struct {
	Name string
	// OrphanedRecords counts records still tagged with the deleted name.
	OrphanedRecords int64
}

// DeleteGroupUseCase handles group deletion logic.
type DeleteGroupUseCase struct {
	groupRepo  adapter.GroupRepository
	recordRepo adapter.RecordRepository
	cache      adapter.MetricsCache
	locks      *StoreLocks
}

// NewDeleteGroupUseCase creates a new DeleteGroupUseCase instance.
func NewDeleteGroupUseCase(
	groupRepo adapter.GroupRepository,
	recordRepo adapter.RecordRepository,
	cache adapter.MetricsCache,
	locks *StoreLocks,
) *DeleteGroupUseCase {
	return &DeleteGroupUseCase{
		groupRepo:  groupRepo,
		recordRepo: recordRepo,
		cache:      cache,
		locks:      locks,
	}
}

// Execute deletes the group. Records tagged with its name are left as they
// are and reported back.
func (uc *DeleteGroupUseCase) Execute(ctx context.Context, input DeleteGroupInput) (*DeleteGroupOutput, error) {
	unlock := uc.locks.Lock(input.StoreID)
	defer unlock()

	group, err := uc.groupRepo.FindByID(ctx, input.StoreID, input.GroupID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGroupNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	if err := uc.groupRepo.Delete(ctx, input.StoreID, input.GroupID); err != nil {
		if errors.Is(err, domainerror.ErrGroupNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to delete group: %w", err)
	}
	invalidateStore(ctx, uc.cache, input.StoreID)

	orphaned, err := uc.recordRepo.CountByGroupTag(ctx, input.StoreID, group.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to count tagged records: %w", err)
	}

	return &DeleteGroupOutput{
		Name:            group.Name,
		OrphanedRecords: orphaned,
	}, nil
}

func notFound() error {
	return domainerror.NewGroupError(
		domainerror.ErrCodeGroupNotFound,
		"group not found",
		domainerror.ErrGroupNotFound,
	)
}
