package search_tickets

import (
	"strconv"
	"time"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
)

// InvalidCriteriaMessage сообщение при некорректных критериях
const InvalidCriteriaMessage = "Please correct the highlighted search fields."

// Result состояние поиска
type Result struct {
	Searching bool
	Tickets   []domain.AvailableTicket
	Message   string
}

// TypeaheadSettings настройки встроенных контролов поиска
type TypeaheadSettings struct {
	MinQueryLength int
	Debounce       time.Duration
}

// Layout имена полей формы поиска для вида транспорта
type Layout struct {
	Kind          domain.TransportKind
	Departure     string
	Arrival       string
	DepartureDate string
	DepartureTime string
	MinPrice      string
	MaxPrice      string
	Carrier       string

	departureLabel string
	arrivalLabel   string
	carrierLabel   string
	noResults      string
	failure        string
}

var layouts = map[domain.TransportKind]Layout{
	domain.TransportBus: {
		Kind:           domain.TransportBus,
		Departure:      "departureStation",
		Arrival:        "arrivalStation",
		DepartureDate:  "departureDate",
		DepartureTime:  "departureTime",
		MinPrice:       "minPrice",
		MaxPrice:       "maxPrice",
		Carrier:        "line",
		departureLabel: "Departure station",
		arrivalLabel:   "Arrival station",
		carrierLabel:   "Bus line",
		noResults:      "No bus tickets found matching your criteria. Try adjusting your search.",
		failure:        "Bus search failed. Please check your connection and try again.",
	},
	domain.TransportTrain: {
		Kind:           domain.TransportTrain,
		Departure:      "departureStation",
		Arrival:        "arrivalStation",
		DepartureDate:  "departureDate",
		DepartureTime:  "departureTime",
		MinPrice:       "minPrice",
		MaxPrice:       "maxPrice",
		Carrier:        "line",
		departureLabel: "Departure station",
		arrivalLabel:   "Arrival station",
		carrierLabel:   "Train line",
		noResults:      "No train tickets found matching your criteria. Try adjusting your search.",
		failure:        "Train search failed. Please check your connection and try again.",
	},
	domain.TransportFlight: {
		Kind:           domain.TransportFlight,
		Departure:      "originAirport",
		Arrival:        "destinationAirport",
		DepartureDate:  "departureDate",
		DepartureTime:  "departureTime",
		MinPrice:       "minPrice",
		MaxPrice:       "maxPrice",
		Carrier:        "airline",
		departureLabel: "Origin airport",
		arrivalLabel:   "Destination airport",
		carrierLabel:   "Airline",
		noResults:      "No flight tickets found matching your criteria. Try adjusting your search.",
		failure:        "Flight search failed. Please check your connection and try again.",
	},
}

// LayoutFor возвращает имена полей формы поиска
func LayoutFor(kind domain.TransportKind) (Layout, bool) {
	l, ok := layouts[kind]
	return l, ok
}

func (l Layout) formName() string {
	return string(l.Kind) + "_search"
}

// все поля необязательны; проверяется только формат заполненных
func (l Layout) fieldDefs() []forms.FieldDef {
	return []forms.FieldDef{
		{Name: l.Departure, Label: l.departureLabel},
		{Name: l.Arrival, Label: l.arrivalLabel},
		{Name: l.DepartureDate, Label: "Departure date", Rules: []forms.Rule{
			forms.Pattern(forms.DatePattern, "Date must be in YYYY-MM-DD format"),
		}},
		{Name: l.DepartureTime, Label: "Departure time", Rules: []forms.Rule{
			forms.Pattern(forms.TimePattern, "Time must be in HH:MM format"),
		}},
		{Name: l.MinPrice, Label: "Minimum price", Initial: strconv.Itoa(domain.DefaultMinPrice), Rules: []forms.Rule{forms.MinNumber(0)}},
		{Name: l.MaxPrice, Label: "Maximum price", Initial: strconv.Itoa(domain.DefaultMaxPrice), Rules: []forms.Rule{forms.MinNumber(0)}},
		{Name: l.Carrier, Label: l.carrierLabel, Rules: []forms.Rule{forms.MaxLength(100)}},
	}
}
