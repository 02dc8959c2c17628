package create_details

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// DetailsClient интерфейс клиента бэкенда для формы рейса
type DetailsClient interface {
	GetStation(ctx context.Context, t domain.EntityType, id string) (domain.Station, error)
	CreateDetails(ctx context.Context, details domain.TransportDetails) (string, error)
}

// Metrics учёт поиска во встроенных контролах и отправки формы
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
