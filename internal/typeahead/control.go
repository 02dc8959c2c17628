package typeahead

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/pkg/clock"
	"github.com/m04kA/TravelBuddy-Client/pkg/metrics"
)

// State состояние контрола
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateSearching
	StateResultsShown
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateSearching:
		return "searching"
	case StateResultsShown:
		return "results_shown"
	case StateSelected:
		return "selected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config настройки контрола, задаются встраивающей формой
type Config struct {
	EntityType     domain.EntityType
	Label          string
	Placeholder    string
	MinQueryLength int           // по умолчанию domain.DefaultMinQueryLength
	Debounce       time.Duration // по умолчанию domain.DefaultDebounce
	LabelStyle     domain.LabelStyle
}

// Control поиск станции по мере ввода.
//
// Нажатия внутри окна тишины схлопываются в один запрос, повтор того же текста
// подавляется. Каждый отправленный запрос получает номер поколения; ответ
// применяется, только если его поколение всё ещё последнее. Запрос устаревшего
// поколения также отменяется через context.
//
// Выбранный идентификатор сообщается форме через RegisterOnValueChange.
type Control struct {
	cfg      Config
	searcher Searcher
	clock    clock.Clock
	log      Logger
	metrics  Metrics

	mu         sync.Mutex
	text       string
	value      *string
	results    []domain.StationView
	state      State
	timer      *clock.Timer
	debounceID uint64
	generation uint64
	inFlight   bool
	cancel     context.CancelFunc
	lastIssued string
	hasIssued  bool
	closed     bool

	rootCtx    context.Context
	rootCancel context.CancelFunc

	onValueChange func(*string)
	onInteracted  func()
	onResults     func([]domain.StationView)
}

// New создает контрол. metrics может быть nil.
func New(cfg Config, searcher Searcher, clk clock.Clock, log Logger, m Metrics) (*Control, error) {
	if _, ok := adapters[cfg.EntityType]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, cfg.EntityType)
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = domain.DefaultMinQueryLength
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = domain.DefaultDebounce
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())

	return &Control{
		cfg:        cfg,
		searcher:   searcher,
		clock:      clk,
		log:        log,
		metrics:    m,
		state:      StateIdle,
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}, nil
}

// Config возвращает настройки контрола
func (c *Control) Config() Config {
	return c.cfg
}

// RegisterOnValueChange регистрирует получателя выбранного идентификатора.
// nil означает, что значение сброшено.
func (c *Control) RegisterOnValueChange(fn func(id *string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onValueChange = fn
}

// RegisterOnInteracted регистрирует слушателя взаимодействия (touched)
func (c *Control) RegisterOnInteracted(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onInteracted = fn
}

// RegisterOnResults регистрирует слушателя изменений списка результатов.
// Может вызываться из горутины поиска.
func (c *Control) RegisterOnResults(fn func([]domain.StationView)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onResults = fn
}

// OnKeystroke обновляет текст и планирует поиск.
// Ввод после выбора сбрасывает выбранное значение.
func (c *Control) OnKeystroke(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.text = text
	valueCleared := c.value != nil
	c.value = nil
	c.stopTimerLocked()

	if c.queryLength(text) < c.cfg.MinQueryLength {
		c.invalidateLocked()
		c.hasIssued = false
		hadResults := len(c.results) > 0
		c.results = nil
		c.state = StateIdle
		onValue, onResults := c.onValueChange, c.onResults
		c.mu.Unlock()

		c.incSearch(metrics.SearchSkipped)
		if valueCleared && onValue != nil {
			onValue(nil)
		}
		if hadResults && onResults != nil {
			onResults(nil)
		}
		return
	}

	c.debounceID++
	id := c.debounceID
	c.timer = c.clock.AfterFunc(c.cfg.Debounce, func() { c.dispatch(id) })
	c.state = StateDebouncing
	onValue := c.onValueChange
	c.mu.Unlock()

	if valueCleared && onValue != nil {
		onValue(nil)
	}
}

// Select фиксирует выбранную станцию
func (c *Control) Select(view domain.StationView) error {
	if view.ID == "" {
		return ErrEmptyIdentifier
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}

	c.stopTimerLocked()
	c.invalidateLocked()
	id := view.ID
	c.value = &id
	c.text = view.Label(c.cfg.LabelStyle)
	c.results = nil
	c.hasIssued = false
	c.lastIssued = ""
	c.state = StateSelected
	onValue, onInteracted, onResults := c.onValueChange, c.onInteracted, c.onResults
	c.mu.Unlock()

	c.log.Info("Select: type=%s id=%s", c.cfg.EntityType, id)

	if onValue != nil {
		emitted := id
		onValue(&emitted)
	}
	if onInteracted != nil {
		onInteracted()
	}
	if onResults != nil {
		onResults(nil)
	}
	return nil
}

// SelectIndex выбирает станцию из текущего списка результатов
func (c *Control) SelectIndex(i int) error {
	c.mu.Lock()
	if i < 0 || i >= len(c.results) {
		n := len(c.results)
		c.mu.Unlock()
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchResult, i, n)
	}
	view := c.results[i]
	c.mu.Unlock()

	return c.Select(view)
}

// Clear сбрасывает значение, текст и результаты. Повторный вызов не меняет состояние.
func (c *Control) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.stopTimerLocked()
	c.invalidateLocked()
	c.value = nil
	c.text = ""
	c.results = nil
	c.hasIssued = false
	c.lastIssued = ""
	c.state = StateIdle
	onValue, onResults := c.onValueChange, c.onResults
	c.mu.Unlock()

	if onValue != nil {
		onValue(nil)
	}
	if onResults != nil {
		onResults(nil)
	}
}

// WriteValue записывает значение со стороны формы без уведомления слушателей.
// Пустой id сбрасывает контрол в Idle.
func (c *Control) WriteValue(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.invalidateLocked()
	c.results = nil

	if id == "" {
		c.value = nil
		c.text = ""
		c.hasIssued = false
		c.lastIssued = ""
		c.state = StateIdle
		return
	}

	c.value = &id
	c.hasIssued = false
	c.lastIssued = ""
	c.state = StateSelected
}

// Close освобождает таймер и отменяет запрос в полёте. После Close контрол не реагирует на ввод.
func (c *Control) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.stopTimerLocked()
	c.invalidateLocked()
	c.closed = true
	c.rootCancel()
}

// Text текущий текст поля
func (c *Control) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Value выбранный идентификатор
func (c *Control) Value() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		return "", false
	}
	return *c.value, true
}

// Results копия текущего списка результатов
func (c *Control) Results() []domain.StationView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.StationView(nil), c.results...)
}

// State текущее состояние
func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// dispatch срабатывает по истечении окна тишины
func (c *Control) dispatch(debounceID uint64) {
	c.mu.Lock()
	if c.closed || debounceID != c.debounceID || c.timer == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil

	term := strings.TrimSpace(c.text)
	if c.queryLength(term) < c.cfg.MinQueryLength {
		c.state = StateIdle
		c.mu.Unlock()
		return
	}

	if c.hasIssued && term == c.lastIssued {
		if c.inFlight {
			c.state = StateSearching
		} else {
			c.state = StateResultsShown
		}
		c.mu.Unlock()
		c.incSearch(metrics.SearchSuppressed)
		return
	}

	c.invalidateLocked()
	c.lastIssued = term
	c.hasIssued = true
	generation := c.generation

	ctx, cancel := context.WithCancel(c.rootCtx)
	c.cancel = cancel
	c.inFlight = true
	c.state = StateSearching
	c.mu.Unlock()

	c.incSearch(metrics.SearchIssued)
	c.log.Info("Search: type=%s term=%q generation=%d", c.cfg.EntityType, term, generation)

	go c.search(ctx, generation, term)
}

func (c *Control) search(ctx context.Context, generation uint64, term string) {
	raws, err := c.searcher.SearchStations(ctx, c.cfg.EntityType, term)

	var views []domain.StationView
	if err == nil {
		var errs []error
		views, errs = NormalizeAll(raws, c.cfg.EntityType)
		for _, e := range errs {
			c.log.Warn("Search: skipped record type=%s term=%q: %v", c.cfg.EntityType, term, e)
		}
	}

	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		c.incSearch(metrics.SearchStale)
		return
	}

	c.inFlight = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		// Неудачный запрос можно повторить тем же текстом
		views = nil
		c.hasIssued = false
		c.lastIssued = ""
	}
	c.results = views
	if c.timer == nil {
		c.state = StateResultsShown
	}
	onResults := c.onResults
	shown := append([]domain.StationView(nil), views...)
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("Search: failed type=%s term=%q, showing no results: %v", c.cfg.EntityType, term, err)
		c.incSearch(metrics.SearchFailed)
	} else {
		c.incSearch(metrics.SearchSucceeded)
	}

	if onResults != nil {
		onResults(shown)
	}
}

// invalidateLocked делает ответ текущего запроса устаревшим и отменяет его
func (c *Control) invalidateLocked() {
	c.generation++
	c.inFlight = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Control) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Control) queryLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

func (c *Control) incSearch(outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.IncSearch(string(c.cfg.EntityType), outcome)
}
