package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// GetCurrentUserInput represents the input for loading the caller's account.
type GetCurrentUserInput struct {
	UserID  uuid.UUID
	StoreID string
}

// GetCurrentUserOutput pairs the caller with the store selected for the request.
type GetCurrentUserOutput struct {
	User  *entity.User
	Store entity.Store
}

// GetCurrentUserUseCase loads the authenticated user.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
	}
}

// Execute loads the user and resolves the selected store.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, input GetCurrentUserInput) (*GetCurrentUserOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	store, ok := entity.FindStore(input.StoreID)
	if !ok {
		return nil, domainerror.NewStoreError(
			domainerror.ErrCodeStoreNotFound,
			"Loja inválida",
			domainerror.ErrStoreNotFound,
		)
	}

	return &GetCurrentUserOutput{
		User:  user,
		Store: store,
	}, nil
}
