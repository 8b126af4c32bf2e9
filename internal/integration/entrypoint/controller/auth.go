// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/auth"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/store"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	loginUseCase        *auth.LoginUserUseCase
	refreshTokenUseCase *auth.RefreshTokenUseCase
	logoutUseCase       *auth.LogoutUserUseCase
	currentUserUseCase  *auth.GetCurrentUserUseCase
	listStoresUseCase   *store.ListStoresUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	currentUserUseCase *auth.GetCurrentUserUseCase,
	listStoresUseCase *store.ListStoresUseCase,
) *AuthController {
	return &AuthController{
		loginUseCase:        loginUseCase,
		refreshTokenUseCase: refreshTokenUseCase,
		logoutUseCase:       logoutUseCase,
		currentUserUseCase:  currentUserUseCase,
		listStoresUseCase:   listStoresUseCase,
	}
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Usuário e senha são obrigatórios", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		ExpiresAt:    output.ExpiresAt,
		User:         dto.ToUserResponse(output.User),
	})
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingToken))
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		ExpiresAt:    output.ExpiresAt,
	})
}

// Logout handles POST /auth/logout requests. It always succeeds.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	_ = ctx.ShouldBindJSON(&req)

	output, _ := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
	})

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// Me handles GET /me requests.
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
		return
	}
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.currentUserUseCase.Execute(ctx.Request.Context(), auth.GetCurrentUserInput{
		UserID:  userID,
		StoreID: storeID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MeResponse{
		User:  dto.ToUserResponse(output.User),
		Store: dto.ToStoreResponse(output.Store),
	})
}

// ListStores handles GET /stores requests.
func (c *AuthController) ListStores(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToStoreListResponse(c.listStoresUseCase.Execute(ctx.Request.Context())))
}
