package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/supplier"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
)

// SupplierController handles supplier endpoints.
type SupplierController struct {
	listUseCase   *supplier.ListSuppliersUseCase
	createUseCase *supplier.CreateSupplierUseCase
	deleteUseCase *supplier.DeleteSupplierUseCase
}

// NewSupplierController creates a new supplier controller instance.
func NewSupplierController(
	listUseCase *supplier.ListSuppliersUseCase,
	createUseCase *supplier.CreateSupplierUseCase,
	deleteUseCase *supplier.DeleteSupplierUseCase,
) *SupplierController {
	return &SupplierController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /suppliers requests.
func (c *SupplierController) List(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	suppliers, err := c.listUseCase.Execute(ctx.Request.Context(), storeID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierListResponse(suppliers))
}

// Create handles POST /suppliers requests.
func (c *SupplierController) Create(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	var req dto.CreateSupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), supplier.CreateSupplierInput{
		StoreID:    storeID,
		Name:       req.Name,
		Contact:    req.Contact,
		Email:      req.Email,
		Categories: req.Categories,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSupplierResponse(created))
}

// Delete handles DELETE /suppliers/:id requests.
func (c *SupplierController) Delete(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), storeID, id); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
