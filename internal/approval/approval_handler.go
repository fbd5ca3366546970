package approval

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	applicationerrors "github.com/1000bang/vacation-api-sub001/internal/application/errors"
	approvalerrors "github.com/1000bang/vacation-api-sub001/internal/approval/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/middleware"
	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
	"github.com/1000bang/vacation-api-sub001/internal/shared/response"
)

type Handler struct {
	engine     Engine
	aggregator Aggregator
	logger     *zap.Logger
}

func NewHandler(engine Engine, aggregator Aggregator, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &Handler{engine: engine, aggregator: aggregator, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approval request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseKeyParams(c *gin.Context) (domain.ApplicationType, int64, bool) {
	typ, ok := domain.ParseApplicationType(c.Param("type"))
	if !ok {
		httpErr := apperror.ToHTTP(applicationerrors.ErrUnknownApplicationType)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return "", 0, false
	}
	seq, err := strconv.ParseInt(c.Param("seq"), 10, 64)
	if err != nil || seq <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "seq must be a positive integer", nil)
		return "", 0, false
	}
	return typ, seq, true
}

func (h *Handler) Approve(c *gin.Context) {
	typ, seq, ok := parseKeyParams(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	next, err := h.engine.Transition(c.Request.Context(), typ, seq, actor, domain.ActionApprove, "")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, TransitionResponse{
		ApplicationType: typ.Slug(),
		ApplicationSeq:  seq,
		ApprovalStatus:  next,
	}, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	typ, seq, ok := parseKeyParams(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The body carries only the reason, so a validator failure means
		// it is missing. Anything else is a malformed request.
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.writeServiceError(c, approvalerrors.ErrReasonRequired)
			return
		}
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	next, err := h.engine.Transition(c.Request.Context(), typ, seq, actor, domain.ActionReject, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, TransitionResponse{
		ApplicationType: typ.Slug(),
		ApplicationSeq:  seq,
		ApprovalStatus:  next,
	}, nil)
}

func (h *Handler) Resubmit(c *gin.Context) {
	typ, seq, ok := parseKeyParams(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	next, err := h.engine.Resubmit(c.Request.Context(), typ, seq, actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, TransitionResponse{
		ApplicationType: typ.Slug(),
		ApplicationSeq:  seq,
		ApprovalStatus:  next,
	}, nil)
}

func (h *Handler) ListPending(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	view, err := h.aggregator.ListPending(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view, nil)
}
