package response

import (
	"errors"
	"net/http"

	"github.com/bright-horizons-travel/service-booking/internal/pkg/domain"
	"github.com/gin-gonic/gin"
)

// Success writes a 200 response with the standard envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 response with the standard envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BadRequest writes a 400 response with a single error message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"message": msg},
	})
}

// Paginated writes a 200 response carrying a page of items plus pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Error maps a domain error to the matching HTTP status. Validation failures carry
// the full aggregated message list so a form can re-display every violation; all
// other failures carry a generic message plus the internal detail string.
func Error(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  validationErr.Messages,
		})
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"message": notFoundErr.Error()},
		})
		return
	}

	var invalidStateErr *domain.InvalidStateError
	if errors.As(err, &invalidStateErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"message": invalidStateErr.Error()},
		})
		return
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"message": conflictErr.Error()},
		})
		return
	}

	var forbiddenErr *domain.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"message": forbiddenErr.Error()},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"message": "internal server error",
			"detail":  err.Error(),
		},
	})
}
