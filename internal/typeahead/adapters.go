package typeahead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// fieldKeys ключи полей записи бэкенда для одного типа станции.
// Ключи перечислены в порядке приоритета.
type fieldKeys struct {
	id       []string
	fullName []string
	code     []string
	city     []string
}

var adapters = map[domain.EntityType]fieldKeys{
	domain.EntityAirport: {
		id:       []string{"id", "airportId"},
		fullName: []string{"airportFullName"},
		code:     []string{"airportCode"},
		city:     []string{"airportCityLocation", "airportLocationCity"},
	},
	domain.EntityBus: {
		id:       []string{"busStationId", "id"},
		fullName: []string{"busStationFullName"},
		code:     []string{"busStationCode"},
		city:     []string{"busStationCityLocation", "busStationLocationCity"},
	},
	domain.EntityTrain: {
		id:       []string{"trainStationId", "id"},
		fullName: []string{"trainStationFullName"},
		code:     []string{"trainStationCode"},
		city:     []string{"trainStationCityLocation", "trainStationLocationCity"},
	},
}

// Normalize приводит запись бэкенда к StationView.
// Числовой идентификатор переводится в строку без изменений (7 -> "7").
func Normalize(raw json.RawMessage, t domain.EntityType) (domain.StationView, error) {
	keys, ok := adapters[t]
	if !ok {
		return domain.StationView{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, t)
	}

	var record map[string]interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&record); err != nil {
		return domain.StationView{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if record == nil {
		return domain.StationView{}, fmt.Errorf("%w: null record", ErrInvalidRecord)
	}

	id := lookup(record, keys.id)
	if id == "" {
		return domain.StationView{}, fmt.Errorf("%w: %s id", ErrMissingField, t)
	}

	return domain.StationView{
		ID:           id,
		FullName:     lookup(record, keys.fullName),
		Code:         lookup(record, keys.code),
		CityLocation: lookup(record, keys.city),
	}, nil
}

// NormalizeAll нормализует список записей. Записи, которые не удалось разобрать,
// пропускаются и возвращаются вторым значением как ошибки.
func NormalizeAll(raws []json.RawMessage, t domain.EntityType) ([]domain.StationView, []error) {
	views := make([]domain.StationView, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		view, err := Normalize(raw, t)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		views = append(views, view)
	}
	return views, errs
}

func lookup(record map[string]interface{}, keys []string) string {
	for _, key := range keys {
		switch v := record[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}
