package register_station

import (
	"strings"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
)

// InvalidFormMessage сообщение при непрошедшей проверке форме
const InvalidFormMessage = "Please fill in all required fields correctly."

// Status состояние отправки формы
type Status struct {
	Submitting bool
	Message    string
	Success    bool
}

// Layout поля формы регистрации станции
type Layout struct {
	EntityType domain.EntityType
	FullName   string
	Code       string
	City       string
	Country    string
	Timezone   string // только для аэропортов

	defs    []forms.FieldDef
	build   func(values map[string]string) domain.Station
	failure string
}

var layouts = map[domain.EntityType]Layout{
	domain.EntityAirport: {
		EntityType: domain.EntityAirport,
		FullName:   "airportFullName",
		Code:       "airportCode",
		City:       "airportLocationCity",
		Country:    "airportLocationCountry",
		Timezone:   "airportTimezone",
		defs: []forms.FieldDef{
			{Name: "airportFullName", Label: "Airport name", Rules: []forms.Rule{forms.Required(), forms.MinLength(3)}},
			{Name: "airportCode", Label: "Airport code", Rules: codeRules(domain.EntityAirport)},
			{Name: "airportLocationCity", Label: "City", Rules: []forms.Rule{forms.Required(), forms.MinLength(2)}},
			{Name: "airportLocationCountry", Label: "Country", Rules: []forms.Rule{forms.Required(), forms.MinLength(2)}},
			{Name: "airportTimezone", Label: "Timezone", Rules: []forms.Rule{forms.Required()}},
		},
		build: func(v map[string]string) domain.Station {
			return &domain.Airport{
				FullName:        strings.TrimSpace(v["airportFullName"]),
				Code:            normalizeCode(v["airportCode"]),
				CityLocation:    strings.TrimSpace(v["airportLocationCity"]),
				CountryLocation: strings.TrimSpace(v["airportLocationCountry"]),
				Timezone:        strings.TrimSpace(v["airportTimezone"]),
			}
		},
		failure: "Failed to add airport. Please try again.",
	},
	domain.EntityBus: {
		EntityType: domain.EntityBus,
		FullName:   "busStationFullName",
		Code:       "busStationCode",
		City:       "busStationCityLocation",
		Country:    "busStationCountryLocation",
		defs: []forms.FieldDef{
			{Name: "busStationFullName", Label: "Station name", Rules: []forms.Rule{forms.Required()}},
			{Name: "busStationCode", Label: "Station code", Rules: codeRules(domain.EntityBus)},
			{Name: "busStationCityLocation", Label: "City", Rules: []forms.Rule{forms.Required()}},
			{Name: "busStationCountryLocation", Label: "Country"},
		},
		build: func(v map[string]string) domain.Station {
			return &domain.BusStation{
				FullName:        strings.TrimSpace(v["busStationFullName"]),
				Code:            normalizeCode(v["busStationCode"]),
				CityLocation:    strings.TrimSpace(v["busStationCityLocation"]),
				CountryLocation: strings.TrimSpace(v["busStationCountryLocation"]),
			}
		},
		failure: "Failed to add bus station. Please try again.",
	},
	domain.EntityTrain: {
		EntityType: domain.EntityTrain,
		FullName:   "trainStationFullName",
		Code:       "trainStationCode",
		City:       "trainStationCityLocation",
		Country:    "trainStationCountryLocation",
		defs: []forms.FieldDef{
			{Name: "trainStationFullName", Label: "Station name", Rules: []forms.Rule{forms.Required()}},
			{Name: "trainStationCode", Label: "Station code", Rules: codeRules(domain.EntityTrain)},
			{Name: "trainStationCityLocation", Label: "City", Rules: []forms.Rule{forms.Required()}},
			{Name: "trainStationCountryLocation", Label: "Country"},
		},
		build: func(v map[string]string) domain.Station {
			return &domain.TrainStation{
				FullName:        strings.TrimSpace(v["trainStationFullName"]),
				Code:            normalizeCode(v["trainStationCode"]),
				CityLocation:    strings.TrimSpace(v["trainStationCityLocation"]),
				CountryLocation: strings.TrimSpace(v["trainStationCountryLocation"]),
			}
		},
		failure: "Failed to add train station. Please try again.",
	},
}

// LayoutFor возвращает поля формы для типа станции
func LayoutFor(t domain.EntityType) (Layout, bool) {
	l, ok := layouts[t]
	return l, ok
}

// Fields имена полей в порядке показа
func (l Layout) Fields() []string {
	names := make([]string, 0, len(l.defs))
	for _, d := range l.defs {
		names = append(names, d.Name)
	}
	return names
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func codeRules(t domain.EntityType) []forms.Rule {
	min, max := domain.CodeLengthBounds(t)
	return []forms.Rule{forms.Required(), forms.MinLength(min), forms.MaxLength(max)}
}
