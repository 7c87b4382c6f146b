// server/internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"hospital-ops-api-server/internal/allocation"

	"github.com/gin-gonic/gin"
)

// respondError ánh xạ lỗi nghiệp vụ của engine sang mã HTTP:
// ValidationError -> 400, NotFoundError -> 404, InsufficientStockError -> 409,
// InvalidTransitionError -> 409, còn lại -> 500.
func respondError(c *gin.Context, err error) {
	var validationErr *allocation.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		return
	}

	var notFoundErr *allocation.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}

	var stockErr *allocation.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error(), "itemName": stockErr.ItemName})
		return
	}

	var transitionErr *allocation.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
