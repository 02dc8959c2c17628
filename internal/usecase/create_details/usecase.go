package create_details

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
	"github.com/m04kA/TravelBuddy-Client/internal/typeahead"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

// Shell форма рейса (автобус, поезд или самолёт) с двумя контролами поиска станций.
// Перед отправкой обе станции запрашиваются по идентификатору параллельно;
// рейс отправляется только если обе найдены.
type Shell struct {
	layout    Layout
	form      *forms.Form
	departure *typeahead.Control
	arrival   *typeahead.Control
	client    DetailsClient
	logger    Logger
	metrics   Metrics

	mu     sync.Mutex
	status Status
}

// NewShell создает форму для вида транспорта. metrics может быть nil.
func NewShell(
	kind domain.TransportKind,
	client DetailsClient,
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

	entityType := kind.EntityType()
	var err error
	s.departure, err = typeahead.New(typeahead.Config{
		EntityType:     entityType,
		Label:          layout.departureLabel,
		Placeholder:    "Search " + strings.ToLower(layout.departureLabel),
		MinQueryLength: settings.MinQueryLength,
		Debounce:       settings.Debounce,
		LabelStyle:     domain.LabelCodeAndName,
	}, searcher, clk, logger, searchMetrics)
	if err != nil {
		return nil, err
	}

	s.arrival, err = typeahead.New(typeahead.Config{
		EntityType:     entityType,
		Label:          layout.arrivalLabel,
		Placeholder:    "Search " + strings.ToLower(layout.arrivalLabel),
		MinQueryLength: settings.MinQueryLength,
		Debounce:       settings.Debounce,
		LabelStyle:     domain.LabelCodeAndName,
	}, searcher, clk, logger, searchMetrics)
	if err != nil {
		s.departure.Close()
		return nil, err
	}

	s.bind(s.departure, layout.Departure)
	s.bind(s.arrival, layout.Arrival)

	return s, nil
}

// bind связывает контрол с полем формы: выбранный id пишется в поле, взаимодействие помечает поле
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

// Status текущее состояние отправки
func (s *Shell) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Close освобождает встроенные контролы
func (s *Shell) Close() {
	s.departure.Close()
	s.arrival.Close()
}

// Submit проверяет форму, получает обе станции и отправляет рейс.
// При успехе форма сбрасывается, при ошибке бэкенда значения сохраняются.
func (s *Shell) Submit(ctx context.Context) (Status, error) {
	s.mu.Lock()
	if s.status.Submitting {
		st := s.status
		s.mu.Unlock()
		return st, ErrSubmitting
	}
	s.status = Status{Submitting: true}
	s.mu.Unlock()

	form := s.layout.formName()

	if !s.form.Valid() {
		s.form.MarkAllTouched()
		s.logger.Warn("SubmitDetails: kind=%s invalid form", s.layout.Kind)
		s.incSubmission(form, metrics.SubmitInvalid)
		return s.finish(Status{Message: InvalidFormMessage}), ErrInvalidForm
	}

	values := s.form.Values()
	departureID := values[s.layout.Departure]
	arrivalID := values[s.layout.Arrival]

	s.logger.Info("SubmitDetails: kind=%s number=%s departure=%s arrival=%s",
		s.layout.Kind, values[s.layout.Number], departureID, arrivalID)

	departure, arrival, err := s.resolve(ctx, departureID, arrivalID)
	if err != nil {
		s.logger.Error("SubmitDetails: kind=%s failed to resolve stations: %v", s.layout.Kind, err)
		s.incSubmission(form, metrics.SubmitUnresolved)
		return s.finish(Status{Message: s.layout.fetchError}), err
	}

	details := domain.TransportDetails{
		Kind:          s.layout.Kind,
		Number:        strings.TrimSpace(values[s.layout.Number]),
		Line:          strings.TrimSpace(values[s.layout.Line]),
		Departure:     departure,
		Arrival:       arrival,
		DepartureDate: values[s.layout.DepartureDate],
		DepartureTime: values[s.layout.DepartureTime],
		ArrivalDate:   values[s.layout.ArrivalDate],
		ArrivalTime:   values[s.layout.ArrivalTime],
		Duration:      values[s.layout.Duration],
		Price:         values[s.layout.Price],
	}

	msg, err := s.client.CreateDetails(ctx, details)
	if err != nil {
		message := s.layout.failure
		if backendMsg, ok := travelbuddy.MessageOf(err); ok {
			message = backendMsg
		}
		s.logger.Error("SubmitDetails: kind=%s number=%s rejected: %v", s.layout.Kind, details.Number, err)
		s.incSubmission(form, metrics.SubmitRejected)
		return s.finish(Status{Message: message}), fmt.Errorf("%w: %v", ErrRejected, err)
	}

	if msg == "" {
		msg = s.layout.success
	}

	s.form.Reset()
	s.departure.WriteValue("")
	s.arrival.WriteValue("")

	s.logger.Info("SubmitDetails: kind=%s number=%s created", s.layout.Kind, details.Number)
	s.incSubmission(form, metrics.SubmitSucceeded)
	return s.finish(Status{Message: msg, Success: true}), nil
}

// resolve получает обе станции параллельно. Ошибка или пустой ответ любой из них прерывает отправку.
func (s *Shell) resolve(ctx context.Context, departureID, arrivalID string) (domain.Station, domain.Station, error) {
	entityType := s.layout.Kind.EntityType()

	var departure, arrival domain.Station
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		station, err := s.fetch(gctx, entityType, "departure", departureID)
		departure = station
		return err
	})
	g.Go(func() error {
		station, err := s.fetch(gctx, entityType, "arrival", arrivalID)
		arrival = station
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return departure, arrival, nil
}

func (s *Shell) fetch(ctx context.Context, t domain.EntityType, role, id string) (domain.Station, error) {
	station, err := s.client.GetStation(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s id=%s: %v", ErrUnresolved, role, t, id, err)
	}
	if station == nil {
		return nil, fmt.Errorf("%w: %s %s id=%s: empty response", ErrUnresolved, role, t, id)
	}
	return station, nil
}

func (s *Shell) setStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

func (s *Shell) finish(st Status) Status {
	st.Submitting = false
	s.setStatus(st)
	return st
}

func (s *Shell) incSubmission(form, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncSubmission(form, outcome)
}
