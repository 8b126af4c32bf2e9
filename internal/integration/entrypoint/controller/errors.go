package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
)

// handleError maps typed domain errors to HTTP responses. Anything else is
// logged and reported as a generic 500.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr     *domainerror.AuthError
		storeErr    *domainerror.StoreError
		recordErr   *domainerror.RecordError
		groupErr    *domainerror.GroupError
		supplierErr *domainerror.SupplierError
		goalErr     *domainerror.GoalError
		dashErr     *domainerror.DashboardError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(ctx, getStatusCodeForAuthError(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &storeErr):
		writeError(ctx, http.StatusBadRequest, storeErr.Message, string(storeErr.Code))
	case errors.As(err, &dashErr):
		writeError(ctx, getStatusCodeForDashboardError(dashErr.Code), dashErr.Message, string(dashErr.Code))
	case errors.As(err, &recordErr):
		writeError(ctx, getStatusCodeForRecordError(recordErr.Code), recordErr.Message, string(recordErr.Code))
	case errors.As(err, &groupErr):
		writeError(ctx, getStatusCodeForGroupError(groupErr.Code), groupErr.Message, string(groupErr.Code))
	case errors.As(err, &supplierErr):
		status := http.StatusBadRequest
		if supplierErr.Code == domainerror.ErrCodeSupplierNotFound {
			status = http.StatusNotFound
		}
		writeError(ctx, status, supplierErr.Message, string(supplierErr.Code))
	case errors.As(err, &goalErr):
		status := http.StatusBadRequest
		if goalErr.Code == domainerror.ErrCodeGoalNotFound {
			status = http.StatusNotFound
		}
		writeError(ctx, status, goalErr.Message, string(goalErr.Code))
	default:
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeWeakPassword:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForRecordError maps record error codes to HTTP status codes.
func getStatusCodeForRecordError(code domainerror.RecordErrorCode) int {
	if code == domainerror.ErrCodeRecordNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// getStatusCodeForGroupError maps group error codes to HTTP status codes.
func getStatusCodeForGroupError(code domainerror.GroupErrorCode) int {
	switch code {
	case domainerror.ErrCodeGroupNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateGroupName:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	if code == domainerror.ErrCodeDashboardInternalError {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// requireStoreID reads the store selected by middleware.RequireStore.
func requireStoreID(ctx *gin.Context) (string, bool) {
	storeID, ok := middleware.GetStoreIDFromContext(ctx)
	if !ok {
		writeError(ctx, http.StatusBadRequest, "Loja não informada", string(domainerror.ErrCodeStoreRequired))
		return "", false
	}
	return storeID, true
}

// parseID parses a numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		writeError(ctx, http.StatusBadRequest, "Invalid ID format", "")
		return 0, false
	}
	return uint(id), true
}
