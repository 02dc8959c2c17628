package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы поиска в typeahead
const (
	SearchIssued     = "issued"
	SearchSuppressed = "suppressed"
	SearchStale      = "stale"
	SearchFailed     = "failed"
	SearchSkipped    = "skipped"
	SearchSucceeded  = "succeeded"
)

// Исходы отправки форм
const (
	SubmitInvalid    = "invalid"
	SubmitUnresolved = "unresolved"
	SubmitRejected   = "rejected"
	SubmitSucceeded  = "succeeded"
)

// Metrics набор prometheus-метрик клиента.
// Все методы безопасны для nil-получателя (метрики выключены).
type Metrics struct {
	registry *prometheus.Registry

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	searches        *prometheus.CounterVec
	submissions     *prometheus.CounterVec
}

// New создает метрики на отдельном реестре
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backend_requests_total",
			Help:        "Total number of requests sent to the booking backend",
			ConstLabels: constLabels,
		}, []string{"endpoint", "method", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "backend_request_duration_seconds",
			Help:        "Booking backend request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "typeahead_searches_total",
			Help:        "Typeahead search lifecycle events by outcome",
			ConstLabels: constLabels,
		}, []string{"entity_type", "outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "form_submissions_total",
			Help:        "Form submissions by form and outcome",
			ConstLabels: constLabels,
		}, []string{"form", "outcome"}),
	}

	registry.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.searches,
		m.submissions,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveBackendRequest учитывает запрос к бэкенду. status=0 означает сетевую ошибку.
func (m *Metrics) ObserveBackendRequest(endpoint, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(endpoint, method, statusLabel).Inc()
	m.backendDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// IncSearch учитывает событие поиска typeahead
func (m *Metrics) IncSearch(entityType, outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(entityType, outcome).Inc()
}

// IncSubmission учитывает отправку формы
func (m *Metrics) IncSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
}

// Registry возвращает реестр (для тестов и собственных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler HTTP-обработчик для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
