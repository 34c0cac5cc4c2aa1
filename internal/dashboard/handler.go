package dashboard

import (
	"net/http"

	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/transport"
	"github.com/hrportal/workforce/pkg/logger"
)

type ServiceAPI interface {
	Stats(actor *employee.Employee) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.Stats(actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
