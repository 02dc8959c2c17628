package register_station

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/forms"
	"github.com/m04kA/TravelBuddy-Client/internal/integrations/travelbuddy"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

// Shell форма регистрации станции администратором
type Shell struct {
	layout  Layout
	form    *forms.Form
	client  StationClient
	logger  Logger
	metrics Metrics

	mu     sync.Mutex
	status Status
}

// NewShell создает форму для типа станции. metrics может быть nil.
func NewShell(t domain.EntityType, client StationClient, logger Logger, m Metrics) (*Shell, error) {
	layout, ok := layouts[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, t)
	}

	return &Shell{
		layout:  layout,
		form:    forms.New(layout.defs...),
		client:  client,
		logger:  logger,
		metrics: m,
	}, nil
}

// Layout поля формы
func (s *Shell) Layout() Layout { return s.layout }

// Form поля формы
func (s *Shell) Form() *forms.Form { return s.form }

// Status текущее состояние отправки
func (s *Shell) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit проверяет форму и регистрирует станцию. Код станции приводится к верхнему регистру.
// Сообщение бэкенда показывается как есть в обоих исходах.
func (s *Shell) Submit(ctx context.Context) (Status, error) {
	s.mu.Lock()
	if s.status.Submitting {
		st := s.status
		s.mu.Unlock()
		return st, ErrSubmitting
	}
	s.status = Status{Submitting: true}
	s.mu.Unlock()

	form := string(s.layout.EntityType) + "_station"

	if !s.form.Valid() {
		s.form.MarkAllTouched()
		s.logger.Warn("RegisterStation: type=%s invalid form", s.layout.EntityType)
		s.incSubmission(form, metrics.SubmitInvalid)
		return s.finish(Status{Message: InvalidFormMessage}), ErrInvalidForm
	}

	station := s.layout.build(s.form.Values())

	msg, err := s.client.CreateStation(ctx, station)
	if err != nil {
		message := s.layout.failure
		if backendMsg, ok := travelbuddy.MessageOf(err); ok {
			message = backendMsg
		}
		s.logger.Error("RegisterStation: type=%s code=%s: %v", s.layout.EntityType, station.StationCode(), err)
		s.incSubmission(form, metrics.SubmitRejected)
		return s.finish(Status{Message: message}), fmt.Errorf("%w: %v", ErrRejected, err)
	}

	s.form.Reset()
	s.logger.Info("RegisterStation: type=%s code=%s created", s.layout.EntityType, station.StationCode())
	s.incSubmission(form, metrics.SubmitSucceeded)
	return s.finish(Status{Message: msg, Success: true}), nil
}

func (s *Shell) finish(st Status) Status {
	st.Submitting = false
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
	return st
}

func (s *Shell) incSubmission(form, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncSubmission(form, outcome)
}
