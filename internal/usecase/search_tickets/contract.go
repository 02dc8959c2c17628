package search_tickets

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// TicketClient поиск билетов и бронирований на бэкенде
type TicketClient interface {
	SearchAvailableTickets(ctx context.Context, criteria domain.TicketSearchCriteria) ([]domain.AvailableTicket, error)
	SearchExistingBookings(ctx context.Context, criteria domain.TicketSearchCriteria) ([]domain.Booking, error)
	SearchByCarrier(ctx context.Context, kind domain.TransportKind, carrier string) ([]domain.AvailableTicket, error)
	MyBookings(ctx context.Context, email string) ([]domain.Booking, error)
}

// Metrics учёт поисков
type Metrics interface {
	IncSearch(entityType, outcome string)
	IncSubmission(form, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
