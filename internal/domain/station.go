package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownEntityType возвращается при неизвестном типе сущности
var ErrUnknownEntityType = errors.New("domain: unknown entity type")

// EntityType тип искомой сущности (станции)
type EntityType string

const (
	EntityAirport EntityType = "airport"
	EntityBus     EntityType = "bus"
	EntityTrain   EntityType = "train"
)

// EntityTypes все поддерживаемые типы сущностей
var EntityTypes = []EntityType{EntityAirport, EntityBus, EntityTrain}

// Valid проверяет, что тип известен
func (t EntityType) Valid() bool {
	switch t {
	case EntityAirport, EntityBus, EntityTrain:
		return true
	default:
		return false
	}
}

// ParseEntityType разбирает тип сущности из строки (bus, train, airport)
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
	}
	return t, nil
}

// Station любая станция/аэропорт, которую можно найти по тексту
type Station interface {
	StationID() string
	StationType() EntityType
	StationName() string
	StationCode() string
	StationCity() string
}

// Airport аэропорт в формате бэкенда
type Airport struct {
	ID              int64  `json:"id,omitempty"`
	FullName        string `json:"airportFullName"`
	Code            string `json:"airportCode"`
	CityLocation    string `json:"airportCityLocation"`
	CountryLocation string `json:"airportCountryLocation,omitempty"`
	Timezone        string `json:"airportTimezone,omitempty"`
}

func (a *Airport) StationID() string       { return formatID(a.ID) }
func (a *Airport) StationType() EntityType { return EntityAirport }
func (a *Airport) StationName() string     { return a.FullName }
func (a *Airport) StationCode() string     { return a.Code }
func (a *Airport) StationCity() string     { return a.CityLocation }

// BusStation автовокзал в формате бэкенда
type BusStation struct {
	ID              int64  `json:"id,omitempty"`
	FullName        string `json:"busStationFullName"`
	Code            string `json:"busStationCode"`
	CityLocation    string `json:"busStationCityLocation"`
	CountryLocation string `json:"busStationCountryLocation,omitempty"`
}

func (b *BusStation) StationID() string       { return formatID(b.ID) }
func (b *BusStation) StationType() EntityType { return EntityBus }
func (b *BusStation) StationName() string     { return b.FullName }
func (b *BusStation) StationCode() string     { return b.Code }
func (b *BusStation) StationCity() string     { return b.CityLocation }

// TrainStation железнодорожная станция в формате бэкенда
type TrainStation struct {
	ID              int64  `json:"id,omitempty"`
	FullName        string `json:"trainStationFullName"`
	Code            string `json:"trainStationCode"`
	CityLocation    string `json:"trainStationCityLocation"`
	CountryLocation string `json:"trainStationCountryLocation,omitempty"`
}

func (s *TrainStation) StationID() string       { return formatID(s.ID) }
func (s *TrainStation) StationType() EntityType { return EntityTrain }
func (s *TrainStation) StationName() string     { return s.FullName }
func (s *TrainStation) StationCode() string     { return s.Code }
func (s *TrainStation) StationCity() string     { return s.CityLocation }

// LabelStyle формат подписи выбранной станции в поле ввода
type LabelStyle int

const (
	LabelCodeAndName LabelStyle = iota // "JFK - JFK Intl"
	LabelNameOnly                      // "JFK Intl"
)

// StationView нормализованное представление станции любого типа.
// Создается адаптером при получении результатов поиска, не сохраняется.
type StationView struct {
	ID           string
	FullName     string
	Code         string
	CityLocation string
}

// Label составляет подпись для поля ввода
func (v StationView) Label(style LabelStyle) string {
	if style == LabelNameOnly || v.Code == "" {
		return v.FullName
	}
	return v.Code + " - " + v.FullName
}

// ViewOf строит StationView из полной сущности
func ViewOf(s Station) StationView {
	return StationView{
		ID:           s.StationID(),
		FullName:     s.StationName(),
		Code:         s.StationCode(),
		CityLocation: s.StationCity(),
	}
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
