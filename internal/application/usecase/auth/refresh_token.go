package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput represents the output of token refresh.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// RefreshTokenUseCase handles token refresh logic.
type RefreshTokenUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute spends the refresh token and issues a new pair. The user is
// reloaded so a changed role takes effect on refresh.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, invalidRefreshToken()
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, invalidRefreshToken()
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	tokenPair, err := uc.tokenService.RotateTokenPair(ctx, input.RefreshToken, user)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidToken) {
			return nil, invalidRefreshToken()
		}
		return nil, fmt.Errorf("failed to rotate tokens: %w", err)
	}

	return &RefreshTokenOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func invalidRefreshToken() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidToken,
		"invalid or expired refresh token",
		domainerror.ErrInvalidToken,
	)
}
