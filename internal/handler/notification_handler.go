package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/models"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
	"github.com/noah-isme/contentguard-api/pkg/response"
)

type notificationFeed interface {
	Recent(limit int) []models.Notification
}

type notificationStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request, operator string) error
}

// NotificationHandler exposes the notification feed and live stream.
type NotificationHandler struct {
	feed   notificationFeed
	stream notificationStream
	logger *zap.Logger
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(feed notificationFeed, stream notificationStream, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{feed: feed, stream: stream, logger: logger}
}

// Recent godoc
// @Summary Recent notifications, newest first
// @Tags Notifications
// @Produce json
// @Param limit query int false "Maximum number of notifications"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	response.JSON(c, http.StatusOK, h.feed.Recent(limit), nil)
}

// Stream godoc
// @Summary Live notification stream (websocket)
// @Tags Notifications
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.stream == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "live notifications unavailable"))
		return
	}
	actor, ok := operatorFromContext(c)
	if !ok {
		return
	}
	if err := h.stream.ServeWS(c.Writer, c.Request, actor.ID); err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
	}
}
