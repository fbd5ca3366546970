package rejection

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/middleware"
	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
	"github.com/1000bang/vacation-api-sub001/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rejection.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rejection.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("rejection request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) parseKey(c *gin.Context) (domain.ApplicationType, int64, bool) {
	typ, ok := domain.ParseApplicationType(c.Param("type"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "unknown application type", nil)
		return "", 0, false
	}
	seq, err := strconv.ParseInt(c.Param("seq"), 10, 64)
	if err != nil || seq <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "seq must be a positive integer", nil)
		return "", 0, false
	}
	return typ, seq, true
}

func (h *Handler) Latest(c *gin.Context) {
	typ, seq, ok := h.parseKey(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	rec, err := h.service.Latest(c.Request.Context(), actor, typ, seq)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rec, nil)
}

func (h *Handler) History(c *gin.Context) {
	typ, seq, ok := h.parseKey(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	records, err := h.service.History(c.Request.Context(), actor, typ, seq)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, records, nil)
}
