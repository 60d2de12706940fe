package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/models"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

// RequireRoles admits operators holding one of roles. It must run after SessionGate.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			response.AbortError(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			response.AbortError(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
