package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/goal"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase   *goal.ListGoalsUseCase
	createUseCase *goal.CreateGoalUseCase
	deleteUseCase *goal.DeleteGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	goals, err := c.listUseCase.Execute(ctx.Request.Context(), storeID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		StoreID:           storeID,
		Period:            req.Period,
		RevenueTarget:     req.RevenueTarget,
		CostTargetPercent: req.CostTargetPercent,
		AverageTicket:     req.AverageTicket,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(created))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
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
