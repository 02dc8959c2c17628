package typeahead

import (
	"context"
	"encoding/json"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// Searcher поиск станций на бэкенде. Записи возвращаются в исходной форме.
type Searcher interface {
	SearchStations(ctx context.Context, t domain.EntityType, term string) ([]json.RawMessage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учёт событий поиска
type Metrics interface {
	IncSearch(entityType, outcome string)
}
