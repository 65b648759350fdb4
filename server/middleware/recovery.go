package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tmm22/speechkit/errors"
	"github.com/tmm22/speechkit/logger"
)

// Recovery returns middleware that recovers from handler panics, logs the
// stack, and responds with the standard error envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", r),
					"stack":  string(debug.Stack()),
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				})
				err := apperrors.New(apperrors.ErrCodeInternal,
					"internal server error", http.StatusInternalServerError)
				c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
			}
		}()
		c.Next()
	}
}
