package search_tickets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
	"github.com/m04kA/TravelBuddy-Client/internal/typeahead"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

// Shell форма поиска доступных билетов для одного вида транспорта.
// Станции выбираются необязательными контролами поиска.
type Shell struct {
	layout    Layout
	form      *forms.Form
	departure *typeahead.Control
	arrival   *typeahead.Control
	client    TicketClient
	logger    Logger
	metrics   Metrics

	mu     sync.Mutex
	result Result
}

// NewShell создает форму поиска. metrics может быть nil.
func NewShell(
	kind domain.TransportKind,
	client TicketClient,
	searcher typeahead.Searcher,
	clk clock.Clock,
	settings TypeaheadSettings,
	logger Logger,
	m Metrics,
) (*Shell, error) {
	layout, ok := layouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTransportKind, kind)
	}

	s := &Shell{
		layout:  layout,
		form:    forms.New(layout.fieldDefs()...),
		client:  client,
		logger:  logger,
		metrics: m,
	}

	var searchMetrics typeahead.Metrics
	if m != nil {
		searchMetrics = m
	}

	newControl := func(label string) (*typeahead.Control, error) {
		return typeahead.New(typeahead.Config{
			EntityType:     kind.EntityType(),
			Label:          label,
			Placeholder:    "Search " + strings.ToLower(label),
			MinQueryLength: settings.MinQueryLength,
			Debounce:       settings.Debounce,
			LabelStyle:     domain.LabelCodeAndName,
		}, searcher, clk, logger, searchMetrics)
	}

	var err error
	if s.departure, err = newControl(layout.departureLabel); err != nil {
		return nil, err
	}
	if s.arrival, err = newControl(layout.arrivalLabel); err != nil {
		s.departure.Close()
		return nil, err
	}

	s.bind(s.departure, layout.Departure)
	s.bind(s.arrival, layout.Arrival)

	return s, nil
}

func (s *Shell) bind(control *typeahead.Control, field string) {
	control.RegisterOnValueChange(func(id *string) {
		value := ""
		if id != nil {
			value = *id
		}
		_ = s.form.Set(field, value)
	})
	control.RegisterOnInteracted(func() {
		s.form.Touch(field)
	})
}

// Layout имена полей формы
func (s *Shell) Layout() Layout { return s.layout }

// Form поля формы
func (s *Shell) Form() *forms.Form { return s.form }

// Departure контрол станции отправления
func (s *Shell) Departure() *typeahead.Control { return s.departure }

// Arrival контрол станции прибытия
func (s *Shell) Arrival() *typeahead.Control { return s.arrival }

// Result последний результат поиска
func (s *Shell) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Close освобождает встроенные контролы
func (s *Shell) Close() {
	s.departure.Close()
	s.arrival.Close()
}

// Criteria собирает критерии поиска из текущих значений формы
func (s *Shell) Criteria() (domain.TicketSearchCriteria, error) {
	values := s.form.Values()

	minPrice, err := parsePrice(values[s.layout.MinPrice])
	if err != nil {
		return domain.TicketSearchCriteria{}, fmt.Errorf("%w: min price: %v", ErrInvalidForm, err)
	}
	maxPrice, err := parsePrice(values[s.layout.MaxPrice])
	if err != nil {
		return domain.TicketSearchCriteria{}, fmt.Errorf("%w: max price: %v", ErrInvalidForm, err)
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return domain.TicketSearchCriteria{}, fmt.Errorf("%w: min price %v exceeds max price %v", ErrInvalidForm, *minPrice, *maxPrice)
	}

	criteria := domain.TicketSearchCriteria{
		TransportType:    s.layout.Kind,
		DepartureStation: values[s.layout.Departure],
		ArrivalStation:   values[s.layout.Arrival],
		DepartureDate:    values[s.layout.DepartureDate],
		DepartureTime:    values[s.layout.DepartureTime],
		MinPrice:         minPrice,
		MaxPrice:         maxPrice,
	}

	carrier := strings.TrimSpace(values[s.layout.Carrier])
	if s.layout.Kind == domain.TransportFlight {
		criteria.Airline = carrier
	} else {
		criteria.Line = carrier
	}
	return criteria, nil
}

// Search отправляет критерии на бэкенд. Ошибка бэкенда даёт пустой список и сообщение,
// пустой ответ даёт подсказку изменить критерии.
func (s *Shell) Search(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.result.Searching {
		r := s.result
		s.mu.Unlock()
		return r, ErrSearching
	}
	s.result = Result{Searching: true}
	s.mu.Unlock()

	form := s.layout.formName()

	if !s.form.Valid() {
		s.form.MarkAllTouched()
		s.incSubmission(form, metrics.SubmitInvalid)
		return s.finish(Result{Message: InvalidCriteriaMessage}), ErrInvalidForm
	}

	criteria, err := s.Criteria()
	if err != nil {
		s.logger.Warn("SearchTickets: kind=%s %v", s.layout.Kind, err)
		s.incSubmission(form, metrics.SubmitInvalid)
		return s.finish(Result{Message: InvalidCriteriaMessage}), err
	}

	s.logger.Info("SearchTickets: kind=%s departure=%s arrival=%s date=%s",
		s.layout.Kind, criteria.DepartureStation, criteria.ArrivalStation, criteria.DepartureDate)

	tickets, err := s.client.SearchAvailableTickets(ctx, criteria)
	if err != nil {
		s.logger.Error("SearchTickets: kind=%s failed: %v", s.layout.Kind, err)
		s.incSubmission(form, metrics.SubmitRejected)
		return s.finish(Result{Message: s.layout.failure}), fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	s.logger.Info("SearchTickets: kind=%s found=%d", s.layout.Kind, len(tickets))
	s.incSubmission(form, metrics.SubmitSucceeded)

	result := Result{Tickets: tickets}
	if len(tickets) == 0 {
		result.Message = s.layout.noResults
	}
	return s.finish(result), nil
}

// SearchBookings ищет уже сделанные бронирования по тем же критериям.
// Состояние Result не меняется.
func (s *Shell) SearchBookings(ctx context.Context) ([]domain.Booking, error) {
	if !s.form.Valid() {
		s.form.MarkAllTouched()
		return nil, ErrInvalidForm
	}

	criteria, err := s.Criteria()
	if err != nil {
		return nil, err
	}

	bookings, err := s.client.SearchExistingBookings(ctx, criteria)
	if err != nil {
		s.logger.Error("SearchBookings: kind=%s failed: %v", s.layout.Kind, err)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	s.logger.Info("SearchBookings: kind=%s found=%d", s.layout.Kind, len(bookings))
	return bookings, nil
}

// Clear сбрасывает результаты, форму и контролы станций
func (s *Shell) Clear() {
	s.form.Reset()
	s.departure.WriteValue("")
	s.arrival.WriteValue("")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = Result{}
}

func (s *Shell) finish(r Result) Result {
	r.Searching = false
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
	return r
}

func (s *Shell) incSubmission(form, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncSubmission(form, outcome)
}

func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
