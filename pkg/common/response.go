package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse writes a 200 with the standard success envelope
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse writes a 201 with the standard success envelope
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SuccessResponseWithMeta writes a 200 with data and pagination metadata
func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": meta,
	})
}

// ErrorResponse writes an error with the given status
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// AppErrorResponse translates an AppError to its HTTP shape.
// Underlying detail (Err) is never serialized.
func AppErrorResponse(c *gin.Context, err *AppError) {
	ErrorResponse(c, err.StatusCode(), err.Message)
}

// RespondError writes any error, unwrapping AppError when possible
func RespondError(c *gin.Context, err error, fallback string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		AppErrorResponse(c, appErr)
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, fallback)
}
