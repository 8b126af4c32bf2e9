package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// DefaultMasterPassword is the password the master account is seeded with.
const DefaultMasterPassword = "master"

// EnsureMasterUserOutput reports whether the master account had to be created.
type EnsureMasterUserOutput struct {
	User    *entity.User
	Created bool
}

// EnsureMasterUserUseCase seeds the master admin account when it is missing.
type EnsureMasterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewEnsureMasterUserUseCase creates a new EnsureMasterUserUseCase instance.
func NewEnsureMasterUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *EnsureMasterUserUseCase {
	return &EnsureMasterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute creates the master user unless one already exists. Running it
// again never touches an existing password.
func (uc *EnsureMasterUserUseCase) Execute(ctx context.Context) (*EnsureMasterUserOutput, error) {
	existing, err := uc.userRepo.FindByUsername(ctx, entity.MasterUsername)
	if err == nil {
		return &EnsureMasterUserOutput{User: existing}, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up master user: %w", err)
	}

	// Hash password
	passwordHash, err := uc.passwordService.HashPassword(DefaultMasterPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(entity.MasterUsername, entity.MasterEmail, passwordHash, entity.RoleAdmin)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create master user: %w", err)
	}

	return &EnsureMasterUserOutput{
		User:    user,
		Created: true,
	}, nil
}
