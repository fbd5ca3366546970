package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/1000bang/vacation-api-sub001/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListPolicies exposes the seeded permission table, admin-only. Useful
// when debugging why a role is refused on a decision endpoint.
func (h *Handler) ListPolicies(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Policies(), nil)
}
