package get_carrier_tickets

import "github.com/m04kA/TravelBuddy-Client/internal/domain"

// TicketResponse HTTP response model
type TicketResponse struct {
	ID             int64   `json:"id"`
	Number         string  `json:"number"`
	Route          string  `json:"route"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Price          float64 `json:"price"`
	AdditionalInfo string  `json:"additionalInfo,omitempty"`
}

// TicketsResponse список рейсов перевозчика
type TicketsResponse struct {
	Kind    string           `json:"kind"`
	Carrier string           `json:"carrier,omitempty"`
	Tickets []TicketResponse `json:"tickets"`
}

// FromTickets конвертирует рейсы в HTTP response
func FromTickets(kind domain.TransportKind, carrier string, tickets []domain.AvailableTicket) *TicketsResponse {
	items := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		items[i] = TicketResponse{
			ID:             t.ID,
			Number:         t.Number,
			Route:          t.Route(),
			DepartureTime:  t.DepartureTime,
			ArrivalTime:    t.ArrivalTime,
			Price:          t.Price,
			AdditionalInfo: t.AdditionalInfo,
		}
	}

	return &TicketsResponse{
		Kind:    string(kind),
		Carrier: carrier,
		Tickets: items,
	}
}
