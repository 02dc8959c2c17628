package search_tickets

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
)

// Lookup поиск без формы: бронирования клиента и рейсы перевозчика
type Lookup struct {
	client TicketClient
	logger Logger
}

// NewLookup создает Lookup
func NewLookup(client TicketClient, logger Logger) *Lookup {
	return &Lookup{client: client, logger: logger}
}

// MyBookings бронирования клиента по адресу почты
func (l *Lookup) MyBookings(ctx context.Context, email string) ([]domain.Booking, error) {
	email = strings.TrimSpace(email)
	if msg := forms.Required()("Email", email); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, msg)
	}
	if msg := forms.Email()("Email", email); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, msg)
	}

	bookings, err := l.client.MyBookings(ctx, email)
	if err != nil {
		l.logger.Error("MyBookings: email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	l.logger.Info("MyBookings: email=%s found=%d", email, len(bookings))
	return bookings, nil
}

// ByCarrier доступные рейсы авиакомпании или линии. Пустой carrier даёт все рейсы вида транспорта.
func (l *Lookup) ByCarrier(ctx context.Context, kind domain.TransportKind, carrier string) ([]domain.AvailableTicket, error) {
	carrier = strings.TrimSpace(carrier)

	tickets, err := l.client.SearchByCarrier(ctx, kind, carrier)
	if err != nil {
		l.logger.Error("ByCarrier: kind=%s carrier=%s: %v", kind, carrier, err)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	l.logger.Info("ByCarrier: kind=%s carrier=%s found=%d", kind, carrier, len(tickets))
	return tickets, nil
}
