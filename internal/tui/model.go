// Package tui implements the interactive pokedex pager.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/pokedex-client/internal/notify"
	"github.com/Sternrassler/pokedex-client/pkg/pagination"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// FetchFunc loads the full record set once.
type FetchFunc func(ctx context.Context) ([]pokedex.Record, error)

// ViewState is the pager's lifecycle stage.
type ViewState int

const (
	ViewStateLoading ViewState = iota
	ViewStateBrowsing
	ViewStateFailed
)

// recordsLoadedMsg carries a successful fetch.
type recordsLoadedMsg struct {
	records []pokedex.Record
}

// fetchFailedMsg carries the error that aborted the fetch.
type fetchFailedMsg struct {
	err error
}

// Options configures the pager.
type Options struct {
	PageSize int
	Notifier notify.Notifier
}

// Model is the Bubble Tea model for the pager.
//
// The pager pointer is shared between copies of the model. Bubble Tea
// delivers one message at a time, so it is never mutated concurrently.
type Model struct {
	ctx      context.Context
	fetch    FetchFunc
	pageSize int
	notifier notify.Notifier
	logger   zerolog.Logger

	state   ViewState
	pager   *pagination.Pager[pokedex.Record]
	spinner spinner.Model
	keys    keyMap
	width   int
	err     error
	// typed is the page number being entered, 0 when none.
	typed int
}

// New creates a pager that fetches with fetch on start.
func New(ctx context.Context, fetch FetchFunc, opts Options) Model {
	if opts.PageSize < 1 {
		opts.PageSize = pagination.DefaultPageSize
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewLog()
	}

	return Model{
		ctx:      ctx,
		fetch:    fetch,
		pageSize: opts.PageSize,
		notifier: opts.Notifier,
		logger:   log.With().Str("component", "tui").Logger(),
		state:    ViewStateLoading,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:     defaultKeyMap(),
		width:    defaultWidth,
	}
}

// Init starts the spinner and the fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) fetchCmd() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		records, err := fetch(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return recordsLoadedMsg{records: records}
	}
}

// Update handles messages (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsLoadedMsg:
		m.pager = pagination.NewPager(msg.records, m.pageSize)
		m.state = ViewStateBrowsing
		return m, nil

	case fetchFailedMsg:
		m.state = ViewStateFailed
		m.err = msg.err
		m.logger.Error().Err(msg.err).Msg("Fetch failed")
		m.notifier.Notify(notify.LevelDanger, notify.FetchFailedMessage)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typed > 0 {
		switch {
		case key.Matches(msg, m.keys.Commit):
			m.pager.GoTo(m.typed - 1)
			m.typed = 0
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			m.typed = 0
			return m, nil
		case !key.Matches(msg, m.keys.Jump):
			m.typed = 0
		}
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.state != ViewStateBrowsing {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Prev):
		m.pager.Prev()
	case key.Matches(msg, m.keys.Next):
		m.pager.Next()
	case key.Matches(msg, m.keys.First):
		m.pager.GoTo(0)
	case key.Matches(msg, m.keys.Last):
		m.pager.GoTo(m.pager.Len() - 1)
	case key.Matches(msg, m.keys.Jump):
		m.typeDigit(int(msg.String()[0] - '0'))
	}
	return m, nil
}

// typeDigit extends the typed page number. It jumps as soon as no further
// digit could name an existing page, otherwise it waits for enter or
// another digit.
func (m *Model) typeDigit(d int) {
	n := m.typed*10 + d
	if n == 0 {
		return
	}
	if n*10 > m.pager.Len() {
		m.typed = 0
		m.pager.GoTo(n - 1)
		return
	}
	m.typed = n
}

// View renders the model (Bubble Tea interface).
func (m Model) View() string {
	switch m.state {
	case ViewStateLoading:
		return fmt.Sprintf("\n %s Loading Pokédex...\n\n", m.spinner.View())
	case ViewStateFailed:
		return "\n " + errorStyle.Render(notify.FetchFailedMessage) + "\n" +
			helpStyle.Render(" press q to quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pokédex"))
	b.WriteString("\n")
	b.WriteString(RenderPage(m.pager.Current(), m.perRow()))
	b.WriteString("\n")
	if controls := RenderControls(m.pager.State()); controls != "" {
		b.WriteString(controls)
		b.WriteString("\n")
	}
	status := RenderStatus(m.pager.State())
	if m.typed > 0 {
		status = fmt.Sprintf("Go to page: %d_", m.typed)
	}
	b.WriteString(helpStyle.Render(status + "  " + m.keys.help()))
	b.WriteString("\n")
	return b.String()
}

// perRow fits up to three cards in the terminal width.
func (m Model) perRow() int {
	// border + padding add four columns per card
	n := m.width / (cardWidth + 4)
	return max(1, min(CardsPerRow, n))
}

// State returns the lifecycle stage.
func (m Model) State() ViewState {
	return m.state
}

// Err returns the fetch error once the model is in ViewStateFailed.
func (m Model) Err() error {
	return m.err
}

// Pagination returns the pager state. Zero before records load.
func (m Model) Pagination() pagination.State {
	if m.pager == nil {
		return pagination.State{}
	}
	return m.pager.State()
}

// Run drives the pager until the user quits. It returns the fetch error if
// the fetch failed.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
