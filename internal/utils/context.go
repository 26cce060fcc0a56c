package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/middleware"
	"github.com/tourbook/catalog/internal/types"
)

func GetCurrentAdmin(ctx *gin.Context) (middleware.AuthenticatedAdmin, error) {
	admin, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedAdmin{}, fmt.Errorf("User not authenticated")
	}

	authenticatedAdmin, ok := admin.(middleware.AuthenticatedAdmin)

	if !ok {
		return middleware.AuthenticatedAdmin{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedAdmin, nil
}

// RequestID returns the id assigned by middleware.RequestID, if any.
func RequestID(ctx *gin.Context) string {
	return ctx.GetString(types.ContextRequestIDKey)
}
