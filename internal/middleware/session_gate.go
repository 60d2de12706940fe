package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/models"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/logger"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

// ContextUserKey is the gin context key storing the signed-in identity.
const ContextUserKey = "currentUser"

// SignInPath is where anonymous operators are sent.
const SignInPath = "/signin"

const retryAfterSeconds = "1"

// SessionAuthorizer resolves the operator for a protected request.
type SessionAuthorizer interface {
	Authorize(bearer string) (*models.Identity, error)
}

// SessionGate admits requests only while the session is authenticated. A
// loading session answers 503 with a waiting body; an anonymous one answers
// 401 pointing at the sign-in page.
func SessionGate(sessions SessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer, err := bearerToken(c)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		identity, err := sessions.Authorize(bearer)
		switch {
		case err == nil:
		case errors.Is(err, appErrors.ErrSessionLoading):
			c.Header("Retry-After", retryAfterSeconds)
			c.Header("Cache-Control", "no-store")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"status": string(models.SessionLoading)})
			return
		case errors.Is(err, appErrors.ErrUnauthorized):
			c.Header("Location", SignInPath)
			response.AbortError(c, err)
			return
		default:
			response.AbortError(c, err)
			return
		}

		c.Set(ContextUserKey, identity)
		c.Set(logger.OperatorKey, identity.ID)
		c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the
// access_token query parameter used by websocket clients.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return c.Query("access_token"), nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// CurrentIdentity returns the identity stored by SessionGate.
func CurrentIdentity(c *gin.Context) (*models.Identity, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*models.Identity)
	return identity, ok && identity != nil
}
