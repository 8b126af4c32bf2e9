package dto

import (
	"time"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
)

// CreateSupplierRequest represents the request body for supplier creation.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	// Categories is a comma separated list, e.g. "Carnes, Frios".
	Categories string `json:"categories"`
}

// SupplierResponse represents a single supplier in API responses.
type SupplierResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Contact    string    `json:"contact"`
	Email      string    `json:"email"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"created_at"`
}

// SupplierListResponse represents the response for listing suppliers.
type SupplierListResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
}

// ToSupplierResponse converts a domain Supplier entity to its DTO.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	return SupplierResponse{
		ID:         s.ID,
		Name:       s.Name,
		Contact:    s.Contact,
		Email:      s.Email,
		Categories: categories,
		CreatedAt:  s.CreatedAt,
	}
}

// ToSupplierListResponse converts a list of suppliers.
func ToSupplierListResponse(suppliers []*entity.Supplier) SupplierListResponse {
	out := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		out[i] = ToSupplierResponse(s)
	}
	return SupplierListResponse{Suppliers: out}
}
