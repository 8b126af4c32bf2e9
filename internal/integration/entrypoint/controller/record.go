package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/record"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
)

// RecordController handles daily record endpoints.
type RecordController struct {
	listUseCase           *record.ListRecordsUseCase
	addPurchaseUseCase    *record.AddPurchaseUseCase
	removePurchaseUseCase *record.RemovePurchaseUseCase
	setRevenueUseCase     *record.SetRevenueUseCase
}

// NewRecordController creates a new record controller instance.
func NewRecordController(
	listUseCase *record.ListRecordsUseCase,
	addPurchaseUseCase *record.AddPurchaseUseCase,
	removePurchaseUseCase *record.RemovePurchaseUseCase,
	setRevenueUseCase *record.SetRevenueUseCase,
) *RecordController {
	return &RecordController{
		listUseCase:           listUseCase,
		addPurchaseUseCase:    addPurchaseUseCase,
		removePurchaseUseCase: removePurchaseUseCase,
		setRevenueUseCase:     setRevenueUseCase,
	}
}

// List handles GET /records requests.
func (c *RecordController) List(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), record.ListRecordsInput{
		StoreID: storeID,
		Period:  ctx.Query("period"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecordListResponse{
		Period:  output.Period.Key(),
		Records: dto.ToRecordResponses(output.Records),
	})
}

// AddPurchase handles POST /records/purchases requests.
func (c *RecordController) AddPurchase(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	var req dto.AddPurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	input := record.AddPurchaseInput{
		StoreID:     storeID,
		Date:        req.Date,
		Amount:      string(req.Amount),
		GroupTag:    req.GroupTag,
		SupplierTag: req.SupplierTag,
	}
	if req.SelectedPeriod != "" {
		selected, err := entity.ParsePeriodKey(req.SelectedPeriod)
		if err != nil {
			handleError(ctx, err)
			return
		}
		input.SelectedPeriod = &selected
	}

	output, err := c.addPurchaseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AddPurchaseResponse{
		Record:                dto.ToRecordResponse(output.Record),
		Period:                output.Period.Key(),
		Records:               dto.ToRecordResponses(output.Records),
		OutsideSelectedPeriod: output.OutsideSelectedPeriod,
	})
}

// RemovePurchase handles DELETE /records/purchases/:date requests. The date
// travels as DD-MM-YYYY since slashes cannot appear in a path segment.
func (c *RecordController) RemovePurchase(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.removePurchaseUseCase.Execute(ctx.Request.Context(), record.RemovePurchaseInput{
		StoreID: storeID,
		Date:    strings.ReplaceAll(ctx.Param("date"), "-", "/"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RemovePurchaseResponse{
		Period:  output.Period.Key(),
		Records: dto.ToRecordResponses(output.Records),
		Pruned:  output.Pruned,
	})
}

// SetRevenue handles PUT /records/revenue requests.
func (c *RecordController) SetRevenue(ctx *gin.Context) {
	storeID, ok := requireStoreID(ctx)
	if !ok {
		return
	}

	var req dto.SetRevenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.setRevenueUseCase.Execute(ctx.Request.Context(), record.SetRevenueInput{
		StoreID: storeID,
		Date:    req.Date,
		Revenue: string(req.Revenue),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SetRevenueResponse{
		Record:  dto.ToRecordResponse(output.Record),
		Period:  output.Period.Key(),
		Records: dto.ToRecordResponses(output.Records),
	})
}
