package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/group"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
)

// GroupController handles purchase group endpoints.
type GroupController struct {
	listUseCase    *group.ListGroupsUseCase
	createUseCase  *group.CreateGroupUseCase
	replaceUseCase *group.ReplaceGroupsUseCase
	deleteUseCase  *group.DeleteGroupUseCase
}

// NewGroupController creates a new group controller instance.
func NewGroupController(
	listUseCase *group.ListGroupsUseCase,
	createUseCase *group.CreateGroupUseCase,
	replaceUseCase *group.ReplaceGroupsUseCase,
	deleteUseCase *group.DeleteGroupUseCase,
) *GroupController {
	return &GroupController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		replaceUseCase: replaceUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// List handles GET /groups requests.
func (c *GroupController) List(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), group.ListGroupsInput{StoreID: storeID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupListResponse(output.Groups))
}

// Create handles POST /groups requests.
func (c *GroupController) Create(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	var req dto.GroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGroupFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), group.CreateGroupInput{
		StoreID:     storeID,
		GroupFields: req.ToGroupFields(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGroupResponse(output.Group))
}

// Replace handles PUT /groups requests.
func (c *GroupController) Replace(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	var req dto.ReplaceGroupsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGroupFields))
		return
	}

	items := make([]group.ReplaceGroupsItem, len(req.Groups))
	for i, g := range req.Groups {
		items[i] = group.ReplaceGroupsItem{ID: g.ID, GroupFields: g.ToGroupFields()}
	}

	output, err := c.replaceUseCase.Execute(ctx.Request.Context(), group.ReplaceGroupsInput{
		StoreID: storeID,
		Groups:  items,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGroupListResponse(output.Groups))
}

// Delete handles DELETE /groups/:id requests.
func (c *GroupController) Delete(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), group.DeleteGroupInput{
		StoreID: storeID,
		GroupID: id,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteGroupResponse{
		Message:         fmt.Sprintf("Grupo %q removido", output.Name),
		Name:            output.Name,
		OrphanedRecords: output.OrphanedRecords,
	})
}
