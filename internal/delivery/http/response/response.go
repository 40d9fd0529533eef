package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-wellness-backend/pkg/validation"
)

// SuccessBody is the 200 shape of the contact endpoint.
type SuccessBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ErrorBody covers every error shape. Optional fields stay absent when
// they do not apply to the failure class.
type ErrorBody struct {
	Error      string                 `json:"error"`
	Code       string                 `json:"code,omitempty"`
	RetryAfter int                    `json:"retryAfter,omitempty"`
	Details    []validation.FieldError `json:"details,omitempty"`
}

// Success sends the contact success payload.
func Success(c *gin.Context, message, timestamp string) {
	c.JSON(http.StatusOK, SuccessBody{
		Success:   true,
		Message:   message,
		Timestamp: timestamp,
	})
}

// ValidationFailed sends a 400 with one detail per violated constraint.
func ValidationFailed(c *gin.Context, summary string, details []validation.FieldError) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   summary,
		Details: details,
	})
}

// RateLimited sends a 429 with a retry hint in seconds.
func RateLimited(c *gin.Context, message string, retryAfter int) {
	c.JSON(http.StatusTooManyRequests, ErrorBody{
		Error:      message,
		RetryAfter: retryAfter,
	})
}

// Internal sends a 500. Configuration and dispatch failures share this
// shape deliberately; the distinction lives in server logs only.
func Internal(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error: message,
		Code:  "INTERNAL_SERVER_ERROR",
	})
}

// MethodNotAllowed sends the 405 shape.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorBody{
		Error: "Method not allowed",
	})
}

// Unauthorized sends a 401 for the admin routes.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{
		Error: message,
	})
}
