package register_station

import (
	"context"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// StationClient регистрация станций на бэкенде
type StationClient interface {
	CreateStation(ctx context.Context, station domain.Station) (string, error)
}

// Metrics учёт отправок форм
type Metrics interface {
	IncSubmission(form, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
