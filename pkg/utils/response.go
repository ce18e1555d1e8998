package utils

import (
	"github.com/coursechat/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// DetailResponse writes the error body used across the API. Every failure,
// validation or backend, carries a single opaque detail string.
func DetailResponse(c *gin.Context, code int, detail string) {
	c.JSON(code, models.ErrorDetail{Detail: detail})
}

// AbortWithDetail writes the error body and stops the handler chain. Used by
// middleware.
func AbortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, models.ErrorDetail{Detail: detail})
}
