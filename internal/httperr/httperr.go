package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// ValidationDetails pins a validation failure to the offending field.
// The agent-facing routes promise this shape to their consumers.
type ValidationDetails struct {
	Field    string `json:"field"`
	Received any    `json:"received"`
	Expected string `json:"expected"`
}

func Validation(c *gin.Context, message string, details ValidationDetails) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation_error",
		"message": message,
		"details": details,
	})
}
