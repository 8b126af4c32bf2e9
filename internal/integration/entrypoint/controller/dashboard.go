package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/dashboard"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard and analysis endpoints.
type DashboardController struct {
	dashboardUseCase        *dashboard.GetDashboardUseCase
	groupAnalysisUseCase    *dashboard.GetGroupAnalysisUseCase
	supplierAnalysisUseCase *dashboard.GetSupplierAnalysisUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	dashboardUseCase *dashboard.GetDashboardUseCase,
	groupAnalysisUseCase *dashboard.GetGroupAnalysisUseCase,
	supplierAnalysisUseCase *dashboard.GetSupplierAnalysisUseCase,
) *DashboardController {
	return &DashboardController{
		dashboardUseCase:        dashboardUseCase,
		groupAnalysisUseCase:    groupAnalysisUseCase,
		supplierAnalysisUseCase: supplierAnalysisUseCase,
	}
}

// Get handles GET /dashboard requests.
func (c *DashboardController) Get(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		StoreID: storeID,
		Period:  ctx.Query("period"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// GroupAnalysis handles GET /analysis/groups requests.
func (c *DashboardController) GroupAnalysis(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.groupAnalysisUseCase.Execute(ctx.Request.Context(), dashboard.GetGroupAnalysisInput{
		StoreID:      storeID,
		Period:       ctx.Query("period"),
		IncludeEmpty: includeEmpty(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupAnalysisResponse(output))
}

// SupplierAnalysis handles GET /analysis/suppliers requests.
func (c *DashboardController) SupplierAnalysis(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.supplierAnalysisUseCase.Execute(ctx.Request.Context(), dashboard.GetSupplierAnalysisInput{
		StoreID:      storeID,
		Period:       ctx.Query("period"),
		IncludeEmpty: includeEmpty(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSupplierAnalysisResponse(output))
}

func includeEmpty(ctx *gin.Context) bool {
	v, _ := strconv.ParseBool(ctx.Query("include_empty"))
	return v
}
