package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// DefaultResetPassword is used when reset-master is run without a password.
const DefaultResetPassword = "123456"

// ResetMasterPasswordInput represents the input for a master password reset.
type ResetMasterPasswordInput struct {
	NewPassword string
}

// ResetMasterPasswordOutput represents the output of a master password reset.
type ResetMasterPasswordOutput struct {
	User *entity.User
}

// ResetMasterPasswordUseCase overwrites the master account's password.
type ResetMasterPasswordUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewResetMasterPasswordUseCase creates a new ResetMasterPasswordUseCase instance.
func NewResetMasterPasswordUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *ResetMasterPasswordUseCase {
	return &ResetMasterPasswordUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute looks the master user up by username, then by email, and stores
// the new password hash.
func (uc *ResetMasterPasswordUseCase) Execute(ctx context.Context, input ResetMasterPasswordInput) (*ResetMasterPasswordOutput, error) {
	password := input.NewPassword
	if password == "" {
		password = DefaultResetPassword
	}

	// Validate password strength
	if err := uc.passwordService.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	user, err := uc.findMaster(ctx)
	if err != nil {
		return nil, err
	}

	// Hash password
	passwordHash, err := uc.passwordService.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	return &ResetMasterPasswordOutput{
		User: user,
	}, nil
}

func (uc *ResetMasterPasswordUseCase) findMaster(ctx context.Context) (*entity.User, error) {
	user, err := uc.userRepo.FindByUsername(ctx, entity.MasterUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find master user: %w", err)
	}

	user, err = uc.userRepo.FindByEmail(ctx, entity.MasterEmail)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"master user not found, run migrate first",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find master user: %w", err)
	}
	return user, nil
}
