package get_my_bookings

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

type BookingLookup interface {
	MyBookings(ctx context.Context, email string) ([]domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
