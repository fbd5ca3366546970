package alarm

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
	"github.com/1000bang/vacation-api-sub001/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("alarm.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("alarm.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("alarm request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	var (
		resp []AlarmResponse
		err  error
	)
	if c.Query("unread") == "true" {
		resp, err = h.service.ListUnread(c.Request.Context(), userID)
	} else {
		resp, err = h.service.ListAll(c.Request.Context(), userID)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, UnreadCountResponse{Count: count}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetString("user_id")
	seq, err := strconv.ParseInt(c.Param("seq"), 10, 64)
	if err != nil || seq <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "seq must be a positive integer", nil)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, seq); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"seq": seq, "is_read": true}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_read": true}, nil)
}
