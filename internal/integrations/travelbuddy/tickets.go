package travelbuddy

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
)

// SearchAvailableTickets ищет доступные билеты по критериям
func (c *Client) SearchAvailableTickets(ctx context.Context, criteria domain.TicketSearchCriteria) ([]domain.AvailableTicket, error) {
	var tickets []domain.AvailableTicket
	err := c.getJSON(ctx, call{
		endpoint: "search.available-tickets",
		method:   http.MethodPost,
		path:     "/search/available-tickets",
		body:     criteria,
	}, &tickets)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// SearchExistingBookings ищет существующие бронирования по критериям
func (c *Client) SearchExistingBookings(ctx context.Context, criteria domain.TicketSearchCriteria) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := c.getJSON(ctx, call{
		endpoint: "search.existing-bookings",
		method:   http.MethodPost,
		path:     "/search/existing-bookings",
		body:     criteria,
	}, &bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// SearchByCarrier быстрый поиск по авиакомпании (рейсы) или линии (поезда, автобусы).
// Пустой carrier возвращает все билеты вида транспорта.
func (c *Client) SearchByCarrier(ctx context.Context, kind domain.TransportKind, carrier string) ([]domain.AvailableTicket, error) {
	var (
		path  string
		param string
	)
	switch kind {
	case domain.TransportFlight:
		path, param = "/search/flights", "airline"
	case domain.TransportTrain:
		path, param = "/search/trains", "line"
	case domain.TransportBus:
		path, param = "/search/buses", "line"
	default:
		return nil, domain.ErrUnknownTransportKind
	}

	query := url.Values{}
	if carrier != "" {
		query.Set(param, carrier)
	}

	var tickets []domain.AvailableTicket
	err := c.getJSON(ctx, call{
		endpoint: "search." + string(kind),
		method:   http.MethodGet,
		path:     path,
		query:    query,
	}, &tickets)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// MyBookings возвращает бронирования клиента по email
func (c *Client) MyBookings(ctx context.Context, email string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := c.getJSON(ctx, call{
		endpoint: "search.my-bookings",
		method:   http.MethodGet,
		path:     "/search/my-bookings",
		query:    url.Values{"email": []string{email}},
	}, &bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
