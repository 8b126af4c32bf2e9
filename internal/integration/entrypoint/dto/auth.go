// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreResponse represents one store.
type StoreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoreListResponse represents the fixed store list.
type StoreListResponse struct {
	Stores []StoreResponse `json:"stores"`
}

// MeResponse pairs the authenticated user with the selected store.
type MeResponse struct {
	User  UserResponse  `json:"user"`
	Store StoreResponse `json:"store"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// ToStoreResponse converts a Store to a StoreResponse DTO.
func ToStoreResponse(store entity.Store) StoreResponse {
	return StoreResponse{ID: store.ID, Name: store.Name}
}

// ToStoreListResponse converts the store list.
func ToStoreListResponse(stores []entity.Store) StoreListResponse {
	out := make([]StoreResponse, len(stores))
	for i, s := range stores {
		out[i] = ToStoreResponse(s)
	}
	return StoreListResponse{Stores: out}
}
