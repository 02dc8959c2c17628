package get_carrier_tickets

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

type TicketLookup interface {
	ByCarrier(ctx context.Context, kind domain.TransportKind, carrier string) ([]domain.AvailableTicket, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
