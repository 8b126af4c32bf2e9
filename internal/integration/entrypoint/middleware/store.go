package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/dto"
)

const (
	// StoreHeader carries the store a request operates on.
	StoreHeader = "X-Store-ID"
	// StoreIDKey is the context key for the selected store ID.
	StoreIDKey ContextKey = "store_id"
)

// RequireStore validates the X-Store-ID header against the store list.
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := strings.TrimSpace(c.GetHeader(StoreHeader))
		if storeID == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Loja não informada",
				Code:  string(domainerror.ErrCodeStoreRequired),
			})
			c.Abort()
			return
		}

		if _, ok := entity.FindStore(storeID); !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Loja inválida",
				Code:  string(domainerror.ErrCodeStoreNotFound),
			})
			c.Abort()
			return
		}

		c.Set(string(StoreIDKey), storeID)
		c.Next()
	}
}

// GetStoreIDFromContext extracts the selected store from the Gin context.
func GetStoreIDFromContext(c *gin.Context) (string, bool) {
	storeID, exists := c.Get(string(StoreIDKey))
	if !exists {
		return "", false
	}
	id, ok := storeID.(string)
	return id, ok
}
