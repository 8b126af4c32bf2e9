package auth

import (
	"context"
	"log/slog"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute invalidates the refresh token. Logging out twice is not an error.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.RefreshToken != "" {
		if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
			slog.Debug("Refresh token invalidation failed on logout", "error", err)
		}
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
