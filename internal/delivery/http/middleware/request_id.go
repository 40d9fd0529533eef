package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-wellness-backend/internal/domain"
)

// RequestID tags every request with a tracking ID, honoring one supplied
// by the reverse proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("RequestID", id)
		c.Header("X-Request-ID", id)

		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
