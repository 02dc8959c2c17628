package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/m04kA/TravelBuddy-Client/internal/domain"
	"github.com/m04kA/TravelBuddy-Client/internal/typeahead"
)

const maxVisibleResults = 8

// resultsMsg новые результаты поиска от контрола
type resultsMsg struct {
	views []domain.StationView
}

// feed канал результатов контрола. done закрывается при выходе из пикера,
// чтобы ожидающая команда listenForResults завершилась.
type feed struct {
	events chan []domain.StationView
	done   chan struct{}
	once   sync.Once
}

func (f *feed) stop() {
	f.once.Do(func() { close(f.done) })
}

// Picker интерактивный выбор станции поверх typeahead.Control.
// Ввод передаётся в контрол, результаты приходят через канал и
// доставляются в цикл bubbletea командой listenForResults.
type Picker struct {
	control *typeahead.Control
	input   textinput.Model
	feed    *feed
	keys    KeyMap
	theme   Theme

	results   []domain.StationView
	cursor    int
	selected  *domain.StationView
	cancelled bool
	err       error
}

// NewPicker создает пикер и подписывается на результаты контрола
func NewPicker(control *typeahead.Control) Picker {
	cfg := control.Config()

	input := textinput.New()
	input.Placeholder = cfg.Placeholder
	input.Prompt = "> "
	input.Focus()

	f := &feed{
		events: make(chan []domain.StationView, 1),
		done:   make(chan struct{}),
	}
	control.RegisterOnResults(func(views []domain.StationView) {
		// в канале держим только последний список
		select {
		case <-f.events:
		default:
		}
		select {
		case f.events <- views:
		default:
		}
	})

	return Picker{
		control: control,
		input:   input,
		feed:    f,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
	}
}

// Selected выбранная станция
func (p Picker) Selected() (domain.StationView, bool) {
	if p.selected == nil {
		return domain.StationView{}, false
	}
	return *p.selected, true
}

// Cancelled пользователь вышел без выбора
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Close отписывает пикер от контрола и завершает ожидание результатов.
// Повторный вызов безопасен.
func (p Picker) Close() {
	p.control.RegisterOnResults(nil)
	p.feed.stop()
}

// Init запускает мигание курсора и ожидание результатов
func (p Picker) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForResults(p.feed))
}

// listenForResults блокируется до следующего списка результатов или закрытия пикера
func listenForResults(f *feed) tea.Cmd {
	return func() tea.Msg {
		select {
		case views := <-f.events:
			return resultsMsg{views: views}
		case <-f.done:
			return nil
		}
	}
}

// Update обрабатывает клавиши и результаты поиска
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		p.results = msg.views
		p.cursor = 0
		return p, listenForResults(p.feed)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.cancelled = true
			p.Close()
			return p, tea.Quit

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, p.keys.Clear):
			p.input.SetValue("")
			p.results = nil
			p.cursor = 0
			p.control.Clear()
			return p, nil

		case key.Matches(msg, p.keys.Select):
			if len(p.results) == 0 {
				return p, nil
			}
			view := p.results[p.cursor]
			if err := p.control.Select(view); err != nil {
				p.err = err
				return p, nil
			}
			p.selected = &view
			p.input.SetValue(view.Label(p.control.Config().LabelStyle))
			p.Close()
			return p, tea.Quit
		}

		before := p.input.Value()
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		if after := p.input.Value(); after != before {
			p.err = nil
			p.control.OnKeystroke(after)
		}
		return p, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View отрисовывает поле ввода и список результатов
func (p Picker) View() string {
	cfg := p.control.Config()

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(p.theme.Label)
	faintStyle := lipgloss.NewStyle().Foreground(p.theme.FaintText)
	normalStyle := lipgloss.NewStyle().Foreground(p.theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Foreground(p.theme.SelectedForeground).
		Background(p.theme.SelectedBackground)

	var b strings.Builder
	b.WriteString(labelStyle.Render(cfg.Label))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")

	switch {
	case p.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(p.theme.Error).Render(p.err.Error()))
		b.WriteString("\n")
	case len(p.results) == 0:
		hint := fmt.Sprintf("type at least %d characters", cfg.MinQueryLength)
		switch p.control.State() {
		case typeahead.StateSearching:
			hint = "searching..."
		case typeahead.StateResultsShown:
			hint = "no matches"
		}
		b.WriteString(faintStyle.Render(hint))
		b.WriteString("\n")
	}

	start := 0
	if p.cursor >= maxVisibleResults {
		start = p.cursor - maxVisibleResults + 1
	}
	for i := start; i < len(p.results) && i < start+maxVisibleResults; i++ {
		line := p.results[i].Label(domain.LabelCodeAndName)
		if city := p.results[i].CityLocation; city != "" {
			line += " (" + city + ")"
		}
		if i == p.cursor {
			b.WriteString(selectedStyle.Render("  " + line + "  "))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(faintStyle.Render(fmt.Sprintf("%s/%s move • %s select • %s clear • %s quit",
		p.keys.Up.Help().Key, p.keys.Down.Help().Key, p.keys.Select.Help().Key,
		p.keys.Clear.Help().Key, p.keys.Quit.Help().Key)))
	return b.String()
}
