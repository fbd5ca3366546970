package application

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applicationerrors "github.com/1000bang/vacation-api-sub001/internal/application/errors"
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
	l := zap.L().Named("application.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("application request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseTypeParam(c *gin.Context) (domain.ApplicationType, bool) {
	typ, ok := domain.ParseApplicationType(c.Param("type"))
	if !ok {
		httpErr := apperror.ToHTTP(applicationerrors.ErrUnknownApplicationType)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return "", false
	}
	return typ, true
}

func parseSeqParam(c *gin.Context) (int64, bool) {
	seq, err := strconv.ParseInt(c.Param("seq"), 10, 64)
	if err != nil || seq <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "seq must be a positive integer", nil)
		return 0, false
	}
	return seq, true
}

func (h *Handler) Create(c *gin.Context) {
	typ, ok := parseTypeParam(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	var (
		item Item
		err  error
	)
	switch typ {
	case domain.TypeVacation:
		var req CreateVacationRequest
		if err = c.ShouldBindJSON(&req); err == nil {
			item, err = h.service.CreateVacation(c.Request.Context(), actor, req)
		}
	case domain.TypeExpense:
		var req CreateExpenseRequest
		if err = c.ShouldBindJSON(&req); err == nil {
			item, err = h.service.CreateExpense(c.Request.Context(), actor, req)
		}
	case domain.TypeRentalSupport:
		var req CreateRentalSupportRequest
		if err = c.ShouldBindJSON(&req); err == nil {
			item, err = h.service.CreateRentalSupport(c.Request.Context(), actor, req)
		}
	case domain.TypeRentalProposal:
		var req CreateRentalProposalRequest
		if err = c.ShouldBindJSON(&req); err == nil {
			item, err = h.service.CreateRentalProposal(c.Request.Context(), actor, req)
		}
	}
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			err = apperror.MapValidationError(err)
		}
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	typ, ok := parseTypeParam(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	items, err := h.service.ListMine(c.Request.Context(), actor, typ)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) Get(c *gin.Context) {
	typ, ok := parseTypeParam(c)
	if !ok {
		return
	}
	seq, ok := parseSeqParam(c)
	if !ok {
		return
	}
	actor := middleware.ActorFrom(c)

	item, err := h.service.Get(c.Request.Context(), actor, typ, seq)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item, nil)
}
