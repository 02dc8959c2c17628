package create_details

import (
	"time"

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

// TypeaheadSettings настройки встроенных контролов поиска
type TypeaheadSettings struct {
	MinQueryLength int
	Debounce       time.Duration
}

// Layout имена полей формы для вида транспорта
type Layout struct {
	Kind          domain.TransportKind
	Number        string
	Line          string
	Departure     string
	Arrival       string
	DepartureDate string
	DepartureTime string
	ArrivalDate   string
	ArrivalTime   string
	Duration      string
	Price         string

	numberLabel    string
	lineLabel      string
	departureLabel string
	arrivalLabel   string
	durationLabel  string
	numberRules    []forms.Rule
	lineRules      []forms.Rule
	fetchError     string
	failure        string
	success        string
}

var layouts = map[domain.TransportKind]Layout{
	domain.TransportBus: {
		Kind:           domain.TransportBus,
		Number:         "busNumber",
		Line:           "busLine",
		Departure:      "busDepartureStation",
		Arrival:        "busArrivalStation",
		DepartureDate:  "busDepartureDate",
		DepartureTime:  "busDepartureTime",
		ArrivalDate:    "busArrivalDate",
		ArrivalTime:    "busArrivalTime",
		Duration:       "busRideDuration",
		Price:          "busRidePrice",
		numberLabel:    "Bus number",
		lineLabel:      "Bus line",
		departureLabel: "Departure station",
		arrivalLabel:   "Arrival station",
		durationLabel:  "Ride duration",
		numberRules:    []forms.Rule{forms.Required()},
		lineRules:      []forms.Rule{forms.Required()},
		fetchError:     "Error: Could not fetch station details. Please try again.",
		failure:        "Failed to add bus Details. Please try again.",
		success:        "Bus details added successfully!",
	},
	domain.TransportTrain: {
		Kind:           domain.TransportTrain,
		Number:         "trainNumber",
		Line:           "trainLine",
		Departure:      "trainDepartureStation",
		Arrival:        "trainArrivalStation",
		DepartureDate:  "trainDepartureDate",
		DepartureTime:  "trainDepartureTime",
		ArrivalDate:    "trainArrivalDate",
		ArrivalTime:    "trainArrivalTime",
		Duration:       "trainRideDuration",
		Price:          "trainRidePrice",
		numberLabel:    "Train number",
		lineLabel:      "Train line",
		departureLabel: "Departure station",
		arrivalLabel:   "Arrival station",
		durationLabel:  "Ride duration",
		numberRules:    []forms.Rule{forms.Required(), forms.MinLength(5), forms.MaxLength(10)},
		lineRules:      []forms.Rule{forms.Required(), forms.MinLength(2)},
		fetchError:     "Error: Could not fetch station details. Please try again.",
		failure:        "Failed to add train Details. Please try again.",
		success:        "Train details added successfully!",
	},
	domain.TransportFlight: {
		Kind:           domain.TransportFlight,
		Number:         "flightNumber",
		Line:           "flightAirline",
		Departure:      "flightOrigin",
		Arrival:        "flightDestination",
		DepartureDate:  "flightDepartureDate",
		DepartureTime:  "flightDepartureTime",
		ArrivalDate:    "flightArrivalDate",
		ArrivalTime:    "flightArrivalTime",
		Duration:       "flightTravelTime",
		Price:          "flightPrice",
		numberLabel:    "Flight number",
		lineLabel:      "Airline",
		departureLabel: "Origin airport",
		arrivalLabel:   "Destination airport",
		durationLabel:  "Travel time",
		numberRules:    []forms.Rule{forms.Required(), forms.MinLength(5), forms.MaxLength(10)},
		lineRules:      []forms.Rule{forms.Required(), forms.MinLength(2)},
		fetchError:     "Error: Could not fetch Airport details. Please try again.",
		failure:        "Failed to add flight Details. Please try again.",
		success:        "Flight details added successfully!",
	},
}

// LayoutFor возвращает имена полей формы для вида транспорта
func LayoutFor(kind domain.TransportKind) (Layout, bool) {
	l, ok := layouts[kind]
	return l, ok
}

func (l Layout) formName() string {
	return string(l.Kind) + "_details"
}

func (l Layout) fieldDefs() []forms.FieldDef {
	return []forms.FieldDef{
		{Name: l.Number, Label: l.numberLabel, Rules: l.numberRules},
		{Name: l.Line, Label: l.lineLabel, Rules: l.lineRules},
		{Name: l.Departure, Label: l.departureLabel, Rules: []forms.Rule{forms.Required()}},
		{Name: l.Arrival, Label: l.arrivalLabel, Rules: []forms.Rule{forms.Required()}},
		{Name: l.DepartureDate, Label: "Departure date", Rules: forms.DateRules},
		{Name: l.DepartureTime, Label: "Departure time", Rules: forms.TimeRules},
		{Name: l.ArrivalDate, Label: "Arrival date", Rules: forms.DateRules},
		{Name: l.ArrivalTime, Label: "Arrival time", Rules: forms.TimeRules},
		{Name: l.Duration, Label: l.durationLabel, Rules: forms.DurationRules},
		{Name: l.Price, Label: "Price", Rules: forms.PriceRules},
	}
}
