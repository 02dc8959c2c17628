package travelbuddy

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для учёта запросов к бэкенду
type Metrics interface {
	ObserveBackendRequest(endpoint, method string, status int, duration time.Duration)
}

// TokenSource источник bearer-токена для админских вызовов (создание станций и рейсов)
type TokenSource interface {
	Retrieve(ctx context.Context) (string, bool, error)
}
