package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-wellness-backend/internal/delivery/http/response"
	"go-wellness-backend/pkg/apperror"
	"go-wellness-backend/pkg/logger"
)

// ErrorHandler is the catch-all for errors appended to the gin context.
// Nothing propagates past the handler boundary unwrapped: every error
// lands in one of the canonical response shapes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			c.JSON(appErr.Code, response.ErrorBody{Error: appErr.Message})
			return
		}

		// Never expose internal details to clients; the real cause is
		// logged server-side only.
		logger.L().Error("unhandled request error", "path", c.FullPath(), "error", err)
		response.Internal(c, "An error occurred. Please try again later.")
	}
}
