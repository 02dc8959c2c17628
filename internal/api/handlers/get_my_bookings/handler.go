package get_my_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/TravelBuddy-Client/internal/api/handlers"
	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/usecase/search_tickets"
)

const (
	msgInvalidEmail = "некорректный адрес почты"
	msgSearchFailed = "не удалось получить бронирования"
)

type Handler struct {
	lookup BookingLookup
	logger Logger
}

func NewHandler(lookup BookingLookup, logger Logger) *Handler {
	return &Handler{
		lookup: lookup,
		logger: logger,
	}
}

// Handle GET /api/v1/bookings?email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	bookings, err := h.lookup.MyBookings(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, search_tickets.ErrInvalidEmail):
			h.logger.Warn("GET /bookings - Invalid email: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, search_tickets.ErrSearchFailed):
			h.logger.Error("GET /bookings - Backend failed: %v", err)
			handlers.RespondBadGateway(w, msgSearchFailed)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if bookings == nil {
		bookings = []domain.Booking{}
	}

	h.logger.Info("GET /bookings - Bookings retrieved: count=%d", len(bookings))
	handlers.RespondJSON(w, http.StatusOK, bookings)
}
