package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithFieldErrors aborts with 400 and the per-field validation errors.
func RespondWithFieldErrors(c *gin.Context, status int, errs []FieldError) {
	c.AbortWithStatusJSON(status, gin.H{"errors": errs})
}
