package search_tickets

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/logger"
)

type fakeTickets struct {
	mu       sync.Mutex
	tickets  []domain.AvailableTicket
	bookings []domain.Booking
	err      error

	criteria []domain.TicketSearchCriteria
	carriers []string
	emails   []string
}

func (f *fakeTickets) SearchAvailableTickets(_ context.Context, c domain.TicketSearchCriteria) ([]domain.AvailableTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.criteria = append(f.criteria, c)
	if f.err != nil {
		return nil, f.err
	}
	return f.tickets, nil
}

func (f *fakeTickets) SearchExistingBookings(_ context.Context, c domain.TicketSearchCriteria) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.criteria = append(f.criteria, c)
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

func (f *fakeTickets) SearchByCarrier(_ context.Context, _ domain.TransportKind, carrier string) ([]domain.AvailableTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carriers = append(f.carriers, carrier)
	if f.err != nil {
		return nil, f.err
	}
	return f.tickets, nil
}

func (f *fakeTickets) MyBookings(_ context.Context, email string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, email)
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type stubSearcher struct{}

func (stubSearcher) SearchStations(context.Context, domain.EntityType, string) ([]json.RawMessage, error) {
	return nil, nil
}

func newShell(t *testing.T, kind domain.TransportKind, client *fakeTickets) *Shell {
	t.Helper()
	shell, err := NewShell(kind, client, stubSearcher{}, clock.Fake(time.Now()), TypeaheadSettings{}, logger.Nop(), nil)
	require.NoError(t, err)
	t.Cleanup(shell.Close)
	return shell
}

func TestShell_Defaults(t *testing.T) {
	shell := newShell(t, domain.TransportBus, &fakeTickets{})

	criteria, err := shell.Criteria()
	require.NoError(t, err)
	assert.Equal(t, domain.TransportBus, criteria.TransportType)
	require.NotNil(t, criteria.MinPrice)
	require.NotNil(t, criteria.MaxPrice)
	assert.Equal(t, 0.0, *criteria.MinPrice)
	assert.Equal(t, 20000.0, *criteria.MaxPrice)
	assert.Empty(t, criteria.DepartureStation)
}

func TestShell_Search_SendsSelectedStations(t *testing.T) {
	client := &fakeTickets{tickets: []domain.AvailableTicket{
		{ID: 1, TransportType: "bus", Number: "B100", DepartureLocation: "Sofia", ArrivalLocation: "Plovdiv", Price: 25},
	}}
	shell := newShell(t, domain.TransportBus, client)
	l := shell.Layout()

	require.NoError(t, shell.Departure().Select(domain.StationView{ID: "7", Code: "CEN", FullName: "Central"}))
	require.NoError(t, shell.Form().Set(l.DepartureDate, "2026-10-20"))
	require.NoError(t, shell.Form().Set(l.Carrier, " Express "))

	result, err := shell.Search(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Searching)
	assert.Empty(t, result.Message)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "Sofia → Plovdiv", result.Tickets[0].Route())
	assert.Equal(t, "$25.00", result.Tickets[0].FormattedPrice())

	require.Len(t, client.criteria, 1)
	sent := client.criteria[0]
	assert.Equal(t, "7", sent.DepartureStation)
	assert.Empty(t, sent.ArrivalStation)
	assert.Equal(t, "2026-10-20", sent.DepartureDate)
	assert.Equal(t, "Express", sent.Line)
	assert.Empty(t, sent.Airline)
}

func TestShell_Search_FlightUsesAirline(t *testing.T) {
	client := &fakeTickets{}
	shell := newShell(t, domain.TransportFlight, client)

	assert.Equal(t, domain.EntityAirport, shell.Departure().Config().EntityType)
	require.NoError(t, shell.Form().Set(shell.Layout().Carrier, "Lufthansa"))

	result, err := shell.Search(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No flight tickets found matching your criteria. Try adjusting your search.", result.Message)
	assert.Empty(t, result.Tickets)

	require.Len(t, client.criteria, 1)
	assert.Equal(t, "Lufthansa", client.criteria[0].Airline)
	assert.Equal(t, domain.TransportFlight, client.criteria[0].TransportType)
}

func TestShell_Search_Failure(t *testing.T) {
	client := &fakeTickets{err: errors.New("connection refused")}
	shell := newShell(t, domain.TransportBus, client)

	result, err := shell.Search(context.Background())
	require.ErrorIs(t, err, ErrSearchFailed)
	assert.Empty(t, result.Tickets)
	assert.Equal(t, "Bus search failed. Please check your connection and try again.", result.Message)
	assert.Equal(t, result, shell.Result())
}

func TestShell_Search_InvalidCriteria(t *testing.T) {
	tests := []struct {
		name  string
		field func(Layout) string
		value string
	}{
		{"bad date", func(l Layout) string { return l.DepartureDate }, "20.10.2026"},
		{"bad time", func(l Layout) string { return l.DepartureTime }, "25:00"},
		{"negative price", func(l Layout) string { return l.MinPrice }, "-5"},
		{"min above max", func(l Layout) string { return l.MinPrice }, "30000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeTickets{}
			shell := newShell(t, domain.TransportTrain, client)

			require.NoError(t, shell.Form().Set(tt.field(shell.Layout()), tt.value))

			result, err := shell.Search(context.Background())
			require.ErrorIs(t, err, ErrInvalidForm)
			assert.Equal(t, InvalidCriteriaMessage, result.Message)
			assert.Empty(t, client.criteria)
		})
	}
}

func TestShell_Clear(t *testing.T) {
	client := &fakeTickets{tickets: []domain.AvailableTicket{{ID: 1}}}
	shell := newShell(t, domain.TransportTrain, client)
	l := shell.Layout()

	require.NoError(t, shell.Arrival().Select(domain.StationView{ID: "3", Code: "VAR", FullName: "Varna"}))
	require.NoError(t, shell.Form().Set(l.MaxPrice, "100"))
	_, err := shell.Search(context.Background())
	require.NoError(t, err)

	shell.Clear()
	assert.Equal(t, Result{}, shell.Result())
	assert.Equal(t, "20000", shell.Form().Value(l.MaxPrice))
	assert.Empty(t, shell.Form().Value(l.Arrival))
	_, ok := shell.Arrival().Value()
	assert.False(t, ok)
}

func TestLookup_MyBookings(t *testing.T) {
	client := &fakeTickets{bookings: []domain.Booking{{ID: 1, BookingID: "BK-1", ClientEmail: "john@example.com"}}}
	lookup := NewLookup(client, logger.Nop())

	_, err := lookup.MyBookings(context.Background(), "john@")
	require.ErrorIs(t, err, ErrInvalidEmail)
	_, err = lookup.MyBookings(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, client.emails)

	bookings, err := lookup.MyBookings(context.Background(), " john@example.com ")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, []string{"john@example.com"}, client.emails)
}

func TestLookup_ByCarrier(t *testing.T) {
	client := &fakeTickets{tickets: []domain.AvailableTicket{{ID: 5, Number: "LH1234"}}}
	lookup := NewLookup(client, logger.Nop())

	tickets, err := lookup.ByCarrier(context.Background(), domain.TransportFlight, " Lufthansa ")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, []string{"Lufthansa"}, client.carriers)

	client.err = errors.New("boom")
	_, err = lookup.ByCarrier(context.Background(), domain.TransportBus, "")
	require.ErrorIs(t, err, ErrSearchFailed)
}

func TestShell_SearchBookings(t *testing.T) {
	client := &fakeTickets{bookings: []domain.Booking{{BookingID: "B-42"}}}
	shell := newShell(t, domain.TransportTrain, client)
	l := shell.Layout()
	require.NoError(t, shell.Form().Set(l.DepartureDate, "2026-10-20"))
	require.NoError(t, shell.Form().Set(l.Carrier, "IC"))

	bookings, err := shell.SearchBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "B-42", bookings[0].BookingID)

	require.Len(t, client.criteria, 1)
	assert.Equal(t, domain.TransportTrain, client.criteria[0].TransportType)
	assert.Equal(t, "IC", client.criteria[0].Line)
	assert.Equal(t, Result{}, shell.Result())
}

func TestShell_SearchBookings_Errors(t *testing.T) {
	client := &fakeTickets{err: errors.New("connection refused")}
	shell := newShell(t, domain.TransportBus, client)

	_, err := shell.SearchBookings(context.Background())
	require.ErrorIs(t, err, ErrSearchFailed)

	require.NoError(t, shell.Form().Set(shell.Layout().MinPrice, "500"))
	require.NoError(t, shell.Form().Set(shell.Layout().MaxPrice, "100"))
	_, err = shell.SearchBookings(context.Background())
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Len(t, client.criteria, 1)
}
