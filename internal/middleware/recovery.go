package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

// Recovery converts panics into INTERNAL_ERROR envelopes.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path), zap.Stack("stack"))
				response.Error(c, appErrors.Internal(fmt.Errorf("panic: %v", rec), "internal server error"))
			}
		}()
		c.Next()
	}
}
