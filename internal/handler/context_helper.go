package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contentguard-api/internal/middleware"
	"github.com/noah-isme/contentguard-api/internal/models"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

// operatorFromContext returns the gated identity or writes 401.
func operatorFromContext(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Identity{}, false
	}
	return *identity, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}
