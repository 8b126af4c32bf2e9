// Package supplier contains supplier use cases.
package supplier

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/httpsniic/sistema-cmc-server/internal/application/adapter"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// ListSuppliersUseCase lists a store's suppliers.
type ListSuppliersUseCase struct {
	supplierRepo adapter.SupplierRepository
}

// NewListSuppliersUseCase creates a new ListSuppliersUseCase instance.
func NewListSuppliersUseCase(supplierRepo adapter.SupplierRepository) *ListSuppliersUseCase {
	return &ListSuppliersUseCase{supplierRepo: supplierRepo}
}

// Execute returns the suppliers ordered by ID.
func (uc *ListSuppliersUseCase) Execute(ctx context.Context, storeID string) ([]*entity.Supplier, error) {
	suppliers, err := uc.supplierRepo.List(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplierInput represents the input for supplier creation.
type CreateSupplierInput struct {
	StoreID string
	Name    string
	Contact string
	Email   string
	// Categories is a comma separated list.
	Categories string
}

// CreateSupplierUseCase handles supplier creation logic.
type CreateSupplierUseCase struct {
	supplierRepo adapter.SupplierRepository
}

// NewCreateSupplierUseCase creates a new CreateSupplierUseCase instance.
func NewCreateSupplierUseCase(supplierRepo adapter.SupplierRepository) *CreateSupplierUseCase {
	return &CreateSupplierUseCase{supplierRepo: supplierRepo}
}

// Execute validates and stores the supplier.
func (uc *CreateSupplierUseCase) Execute(ctx context.Context, input CreateSupplierInput) (*entity.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewSupplierError(
			domainerror.ErrCodeSupplierNameRequired,
			"supplier name is required",
			domainerror.ErrSupplierNameRequired,
		)
	}

	email := strings.TrimSpace(input.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domainerror.NewSupplierError(
				domainerror.ErrCodeInvalidSupplierEmail,
				"invalid supplier email",
				domainerror.ErrInvalidSupplierEmail,
			)
		}
	}

	supplier := entity.NewSupplier(
		input.StoreID,
		name,
		strings.TrimSpace(input.Contact),
		email,
		entity.SplitCategories(input.Categories),
	)

	if err := uc.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

// DeleteSupplierUseCase handles supplier deletion logic.
type DeleteSupplierUseCase struct {
	supplierRepo adapter.SupplierRepository
}

// NewDeleteSupplierUseCase creates a new DeleteSupplierUseCase instance.
func NewDeleteSupplierUseCase(supplierRepo adapter.SupplierRepository) *DeleteSupplierUseCase {
	return &DeleteSupplierUseCase{supplierRepo: supplierRepo}
}

// Execute deletes a supplier of the store.
func (uc *DeleteSupplierUseCase) Execute(ctx context.Context, storeID string, id uint) error {
	if err := uc.supplierRepo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, domainerror.ErrSupplierNotFound) {
			return domainerror.NewSupplierError(
				domainerror.ErrCodeSupplierNotFound,
				"supplier not found",
				domainerror.ErrSupplierNotFound,
			)
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}
