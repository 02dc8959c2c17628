package get_carrier_tickets

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/TravelBuddy-Client/internal/api/handlers"
	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

const (
	msgInvalidKind  = "неизвестный вид транспорта"
	msgSearchFailed = "не удалось получить рейсы"
)

type Handler struct {
	lookup TicketLookup
	logger Logger
}

func NewHandler(lookup TicketLookup, logger Logger) *Handler {
	return &Handler{
		lookup: lookup,
		logger: logger,
	}
}

// Handle GET /api/v1/tickets/{kind}
// Query params: carrier (необязателен, пустой даёт все рейсы)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseTransportKind(mux.Vars(r)["kind"])
	if err != nil {
		h.logger.Warn("GET /tickets/{kind} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	carrier := strings.TrimSpace(r.URL.Query().Get("carrier"))

	tickets, err := h.lookup.ByCarrier(r.Context(), kind, carrier)
	if err != nil {
		h.logger.Error("GET /tickets/{kind} - Failed to get tickets: kind=%s, carrier=%s, error=%v", kind, carrier, err)
		handlers.RespondBadGateway(w, msgSearchFailed)
		return
	}

	h.logger.Info("GET /tickets/{kind} - Tickets retrieved: kind=%s, count=%d", kind, len(tickets))
	handlers.RespondJSON(w, http.StatusOK, FromTickets(kind, carrier, tickets))
}
