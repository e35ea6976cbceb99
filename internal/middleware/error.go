package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "productcatalog/internal/errors"
)

// NotFound answers unmatched routes with the standard error body.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    apperrors.ErrNotFound.Code,
				"message": "No route for " + c.Request.Method + " " + c.Request.URL.Path,
			},
		})
	}
}
