package create_details

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
	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
	"github.com/m04kA/TravelBuddy-Client/internal/typeahead"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/logger"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

type fakeClient struct {
	mu          sync.Mutex
	stations    map[string]domain.Station
	getErrs     map[string]error
	waitForPeer bool
	inFlight    int
	maxInFlight int
	gets        []string

	createMsg string
	createErr error
	created   []domain.TransportDetails
}

func (f *fakeClient) GetStation(_ context.Context, _ domain.EntityType, id string) (domain.Station, error) {
	f.mu.Lock()
	f.gets = append(f.gets, id)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.waitForPeer {
		deadline := time.Now().Add(time.Second)
		for time.Now().Before(deadline) {
			f.mu.Lock()
			both := f.maxInFlight >= 2
			f.mu.Unlock()
			if both {
				break
			}
			time.Sleep(time.Millisecond)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErrs[id]; err != nil {
		return nil, err
	}
	return f.stations[id], nil
}

func (f *fakeClient) CreateDetails(_ context.Context, details domain.TransportDetails) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, details)
	return f.createMsg, nil
}

type stubSearcher struct{}

func (stubSearcher) SearchStations(context.Context, domain.EntityType, string) ([]json.RawMessage, error) {
	return nil, nil
}

type countingMetrics struct {
	mu          sync.Mutex
	submissions map[string]int
}

func (m *countingMetrics) IncSearch(string, string) {}

func (m *countingMetrics) IncSubmission(_, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submissions == nil {
		m.submissions = make(map[string]int)
	}
	m.submissions[outcome]++
}

func (m *countingMetrics) Count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissions[outcome]
}

func newBusClient() *fakeClient {
	return &fakeClient{
		stations: map[string]domain.Station{
			"1": &domain.BusStation{ID: 1, FullName: "Central", Code: "CEN", CityLocation: "Sofia"},
			"2": &domain.BusStation{ID: 2, FullName: "South", Code: "STH", CityLocation: "Plovdiv"},
		},
		createMsg: "Bus details added successfully!",
	}
}

func newShell(t *testing.T, kind domain.TransportKind, client *fakeClient, m Metrics) *Shell {
	t.Helper()
	shell, err := NewShell(kind, client, stubSearcher{}, clock.Fake(time.Now()), TypeaheadSettings{}, logger.Nop(), m)
	require.NoError(t, err)
	t.Cleanup(shell.Close)
	return shell
}

func fillBus(t *testing.T, shell *Shell, departureID, arrivalID string) {
	t.Helper()
	form := shell.Form()
	l := shell.Layout()

	require.NoError(t, form.Set(l.Number, "B100"))
	require.NoError(t, form.Set(l.Line, "Express"))
	require.NoError(t, form.Set(l.DepartureDate, "2026-10-20"))
	require.NoError(t, form.Set(l.DepartureTime, "08:30"))
	require.NoError(t, form.Set(l.ArrivalDate, "2026-10-20"))
	require.NoError(t, form.Set(l.ArrivalTime, "10:45"))
	require.NoError(t, form.Set(l.Duration, "2h 15m"))
	require.NoError(t, form.Set(l.Price, "25.50"))

	require.NoError(t, shell.Departure().Select(domain.StationView{ID: departureID, FullName: "Central", Code: "CEN"}))
	require.NoError(t, shell.Arrival().Select(domain.StationView{ID: arrivalID, FullName: "South", Code: "STH"}))
}

func TestNewShell_UnknownKind(t *testing.T) {
	_, err := NewShell("ship", &fakeClient{}, stubSearcher{}, clock.Real(), TypeaheadSettings{}, logger.Nop(), nil)
	require.ErrorIs(t, err, domain.ErrUnknownTransportKind)
}

func TestShell_PickerBindsField(t *testing.T) {
	shell := newShell(t, domain.TransportBus, newBusClient(), nil)
	l := shell.Layout()

	assert.False(t, shell.Form().IsFieldInvalid(l.Departure))

	require.NoError(t, shell.Departure().Select(domain.StationView{ID: "1", FullName: "Central", Code: "CEN"}))
	assert.Equal(t, "1", shell.Form().Value(l.Departure))

	shell.Departure().Clear()
	assert.Equal(t, "", shell.Form().Value(l.Departure))
	assert.True(t, shell.Form().IsFieldInvalid(l.Departure))
	assert.Equal(t, "Departure station is required", shell.Form().DisplayError(l.Departure))
}

func TestShell_Submit_InvalidForm(t *testing.T) {
	client := newBusClient()
	m := &countingMetrics{}
	shell := newShell(t, domain.TransportBus, client, m)
	l := shell.Layout()

	require.NoError(t, shell.Form().Set(l.Price, "12.345"))

	status, err := shell.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, InvalidFormMessage, status.Message)
	assert.False(t, status.Success)
	assert.False(t, status.Submitting)

	for _, name := range shell.Form().Fields() {
		assert.True(t, shell.Form().IsFieldInvalid(name), name)
	}
	assert.Empty(t, client.gets)
	assert.Empty(t, client.created)
	assert.Equal(t, 1, m.Count(metrics.SubmitInvalid))
}

func TestShell_Submit_ArrivalNotFound(t *testing.T) {
	client := newBusClient()
	m := &countingMetrics{}
	shell := newShell(t, domain.TransportBus, client, m)
	fillBus(t, shell, "1", "404")

	status, err := shell.Submit(context.Background())
	require.ErrorIs(t, err, ErrUnresolved)
	assert.False(t, status.Success)
	assert.Equal(t, "Error: Could not fetch station details. Please try again.", status.Message)

	assert.Empty(t, client.created)
	assert.ElementsMatch(t, []string{"1", "404"}, client.gets)
	assert.Equal(t, "B100", shell.Form().Value(shell.Layout().Number))
	assert.Equal(t, 1, m.Count(metrics.SubmitUnresolved))
}

func TestShell_Submit_StationFetchError(t *testing.T) {
	client := newBusClient()
	client.getErrs = map[string]error{"1": errors.New("connection refused")}
	shell := newShell(t, domain.TransportBus, client, nil)
	fillBus(t, shell, "1", "2")

	status, err := shell.Submit(context.Background())
	require.ErrorIs(t, err, ErrUnresolved)
	assert.False(t, status.Success)
	assert.Empty(t, client.created)
}

func TestShell_Submit_Success(t *testing.T) {
	client := newBusClient()
	client.waitForPeer = true
	m := &countingMetrics{}
	shell := newShell(t, domain.TransportBus, client, m)
	fillBus(t, shell, "1", "2")

	status, err := shell.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Success)
	assert.Equal(t, "Bus details added successfully!", status.Message)
	assert.Equal(t, status, shell.Status())

	assert.Equal(t, 2, client.maxInFlight, "stations must be fetched in parallel")

	require.Len(t, client.created, 1)
	created := client.created[0]
	assert.Equal(t, domain.TransportBus, created.Kind)
	assert.Equal(t, "B100", created.Number)
	assert.Equal(t, "Express", created.Line)
	assert.Equal(t, "CEN", created.Departure.StationCode())
	assert.Equal(t, "STH", created.Arrival.StationCode())
	assert.Equal(t, "2h 15m", created.Duration)
	assert.Equal(t, "25.50", created.Price)

	for name, value := range shell.Form().Values() {
		assert.Empty(t, value, name)
	}
	_, ok := shell.Departure().Value()
	assert.False(t, ok)
	assert.Equal(t, typeahead.StateIdle, shell.Arrival().State())
	assert.Equal(t, 1, m.Count(metrics.SubmitSucceeded))
}

func TestShell_Submit_RejectedKeepsValues(t *testing.T) {
	client := newBusClient()
	client.createErr = &travelbuddy.APIError{StatusCode: 409, Message: "Bus number already exists"}
	m := &countingMetrics{}
	shell := newShell(t, domain.TransportBus, client, m)
	fillBus(t, shell, "1", "2")

	status, err := shell.Submit(context.Background())
	require.ErrorIs(t, err, ErrRejected)
	assert.False(t, status.Success)
	assert.Equal(t, "Bus number already exists", status.Message)
	assert.Equal(t, "1", shell.Form().Value(shell.Layout().Departure))
	assert.Equal(t, 1, m.Count(metrics.SubmitRejected))
}

func TestShell_Submit_RejectedWithoutMessage(t *testing.T) {
	client := newBusClient()
	client.createErr = errors.New("connection reset")
	shell := newShell(t, domain.TransportBus, client, nil)
	fillBus(t, shell, "1", "2")

	status, err := shell.Submit(context.Background())
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Failed to add bus Details. Please try again.", status.Message)
}

func TestShell_Submit_FlightUsesAirports(t *testing.T) {
	client := &fakeClient{
		stations: map[string]domain.Station{
			"10": &domain.Airport{ID: 10, FullName: "Frankfurt", Code: "FRA", CityLocation: "Frankfurt"},
			"11": &domain.Airport{ID: 11, FullName: "Heathrow", Code: "LHR", CityLocation: "London"},
		},
	}
	shell := newShell(t, domain.TransportFlight, client, nil)
	form := shell.Form()
	l := shell.Layout()

	assert.Equal(t, domain.EntityAirport, shell.Departure().Config().EntityType)

	require.NoError(t, form.Set(l.Number, "LH12"))
	require.NoError(t, form.Set(l.Line, "Lufthansa"))
	require.NoError(t, form.Set(l.DepartureDate, "2026-10-20"))
	require.NoError(t, form.Set(l.DepartureTime, "10:00"))
	require.NoError(t, form.Set(l.ArrivalDate, "2026-10-20"))
	require.NoError(t, form.Set(l.ArrivalTime, "11:00"))
	require.NoError(t, form.Set(l.Duration, "1h"))
	require.NoError(t, form.Set(l.Price, "120"))
	require.NoError(t, shell.Departure().Select(domain.StationView{ID: "10", Code: "FRA", FullName: "Frankfurt"}))
	require.NoError(t, shell.Arrival().Select(domain.StationView{ID: "11", Code: "LHR", FullName: "Heathrow"}))

	_, err := shell.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, "Flight number must be at least 5 characters", form.DisplayError(l.Number))

	require.NoError(t, form.Set(l.Number, "LH1234"))
	status, err := shell.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Flight details added successfully!", status.Message)
	require.Len(t, client.created, 1)
	assert.Equal(t, "LHR", client.created[0].Arrival.StationCode())
}
