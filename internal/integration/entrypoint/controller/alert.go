package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/alert"
)

// AlertController triggers the cost alert evaluation on demand.
type AlertController struct {
	evaluateUseCase *alert.EvaluateCostAlertsUseCase
}

// NewAlertController creates a new alert controller instance.
func NewAlertController(evaluateUseCase *alert.EvaluateCostAlertsUseCase) *AlertController {
	return &AlertController{evaluateUseCase: evaluateUseCase}
}

// Run handles POST /alerts/run requests.
func (c *AlertController) Run(ctx *gin.Context) {
	output, err := c.evaluateUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}
