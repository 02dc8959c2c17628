package domain

import "fmt"

// TicketSearchCriteria критерии поиска доступных билетов
type TicketSearchCriteria struct {
	TransportType    TransportKind `json:"transportType,omitempty"`
	DepartureCity    string        `json:"departureCity,omitempty"`
	ArrivalCity      string        `json:"arrivalCity,omitempty"`
	DepartureStation string        `json:"departureStation,omitempty"` // ID станции из typeahead
	ArrivalStation   string        `json:"arrivalStation,omitempty"`
	DepartureDate    string        `json:"departureDate,omitempty"`
	DepartureTime    string        `json:"departureTime,omitempty"`
	MinPrice         *float64      `json:"minPrice,omitempty"`
	MaxPrice         *float64      `json:"maxPrice,omitempty"`
	Airline          string        `json:"airline,omitempty"` // только для рейсов
	Line             string        `json:"line,omitempty"`    // для поездов и автобусов
}

// AvailableTicket сводка по доступному билету
type AvailableTicket struct {
	ID                int64   `json:"id"`
	TransportType     string  `json:"transportType"`
	Number            string  `json:"number"`
	DepartureLocation string  `json:"departureLocation"`
	ArrivalLocation   string  `json:"arrivalLocation"`
	DepartureTime     string  `json:"departureTime"`
	ArrivalTime       string  `json:"arrivalTime"`
	Price             float64 `json:"price"`
	AdditionalInfo    string  `json:"additionalInfo"` // авиакомпания, линия и т.п.
}

// Route возвращает маршрут в виде "откуда → куда"
func (t AvailableTicket) Route() string {
	return t.DepartureLocation + " → " + t.ArrivalLocation
}

// Schedule возвращает время в виде "отправление → прибытие"
func (t AvailableTicket) Schedule() string {
	return t.DepartureTime + " → " + t.ArrivalTime
}

// FormattedPrice возвращает цену в долларах
func (t AvailableTicket) FormattedPrice() string {
	return fmt.Sprintf("$%.2f", t.Price)
}
