package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/internal/models"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
	"github.com/noah-isme/lingua-center-api/pkg/response"
)

// RequireRoles allows the request through only for the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// DenyRoles blocks the listed roles and lets every other authenticated user through.
func DenyRoles(roles ...models.UserRole) gin.HandlerFunc {
	denied := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		denied[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := denied[claims.Role]; ok {
			response.Error(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
