package holiday

import (
	"encoding/json"
	"net/http"

	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/transport"
	"github.com/hrportal/workforce/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Holiday, error)
	Create(actor *employee.Employee, dto CreateHolidayDTO) (*Holiday, error)
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

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"holidays": holidays})
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	actor, ok := employee.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateHoliday: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}
