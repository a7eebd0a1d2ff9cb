package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/pokedex-client/internal/notify"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

func sampleRecords(n int) []pokedex.Record {
	table := pokedex.DefaultTable()
	records := make([]pokedex.Record, 0, n)
	for id := 1; id <= n; id++ {
		records = append(records, pokedex.NewRecord(id, fmt.Sprintf("mon-%d", id), []string{"water"}, table))
	}
	return records
}

func staticFetch(records []pokedex.Record, err error) FetchFunc {
	return func(context.Context) ([]pokedex.Record, error) {
		return records, err
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// loaded returns a model that has received its records.
func loaded(t *testing.T, n int) Model {
	t.Helper()
	m := New(context.Background(), staticFetch(sampleRecords(n), nil), Options{Notifier: &notify.Recorder{}})
	msg := m.fetchCmd()()
	m, _ = update(t, m, msg)
	require.Equal(t, ViewStateBrowsing, m.State())
	return m
}

func TestNew(t *testing.T) {
	m := New(context.Background(), staticFetch(nil, nil), Options{})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Equal(t, 9, m.pageSize)
	assert.NotNil(t, m.notifier)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading Pokédex")
	assert.True(t, m.Pagination().IsEmpty())
}

func TestModel_FetchLoadsRecords(t *testing.T) {
	m := New(context.Background(), staticFetch(sampleRecords(20), nil), Options{PageSize: 9})

	msg := m.fetchCmd()()
	require.IsType(t, recordsLoadedMsg{}, msg)

	m, cmd := update(t, m, msg)
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateBrowsing, m.State())

	state := m.Pagination()
	assert.Equal(t, 3, state.TotalPages)
	assert.Equal(t, 0, state.Current)
	assert.False(t, state.HasPrev())
	assert.True(t, state.HasNext())
}

func TestModel_FetchFailure(t *testing.T) {
	rec := &notify.Recorder{}
	boom := errors.New("retrieve record 4: PokeAPI server error")
	m := New(context.Background(), staticFetch(nil, boom), Options{Notifier: rec})

	msg := m.fetchCmd()()
	require.IsType(t, fetchFailedMsg{}, msg)

	m, _ = update(t, m, msg)
	assert.Equal(t, ViewStateFailed, m.State())
	assert.Equal(t, boom, m.Err())
	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelDanger, Message: notify.FetchFailedMessage},
	}, rec.Sent())
	assert.Contains(t, m.View(), notify.FetchFailedMessage)

	// Navigation is ignored without records
	m, cmd := update(t, m, runes("l"))
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateFailed, m.State())
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t, 20)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want int
	}{
		{name: "next arrow", msg: tea.KeyMsg{Type: tea.KeyRight}, want: 1},
		{name: "next l", msg: runes("l"), want: 2},
		{name: "next at last page is no-op", msg: runes("n"), want: 2},
		{name: "prev arrow", msg: tea.KeyMsg{Type: tea.KeyLeft}, want: 1},
		{name: "prev h", msg: runes("h"), want: 0},
		{name: "prev at first page is no-op", msg: runes("p"), want: 0},
		{name: "jump to 3", msg: runes("3"), want: 2},
		{name: "jump out of range", msg: runes("9"), want: 2},
		{name: "jump to 1", msg: runes("1"), want: 0},
		{name: "last", msg: runes("G"), want: 2},
		{name: "first", msg: tea.KeyMsg{Type: tea.KeyHome}, want: 0},
	}

	for _, tt := range tests {
		var cmd tea.Cmd
		m, cmd = update(t, m, tt.msg)
		assert.Nil(t, cmd, tt.name)
		assert.Equal(t, tt.want, m.Pagination().Current, tt.name)
	}
}

func TestModel_JumpTwoDigitPage(t *testing.T) {
	m := loaded(t, 150)
	require.Equal(t, 17, m.Pagination().TotalPages)

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want int
	}{
		{name: "page 10", keys: []tea.KeyMsg{runes("1"), runes("0")}, want: 9},
		{name: "page 17", keys: []tea.KeyMsg{runes("1"), runes("7")}, want: 16},
		{name: "single digit above one jumps at once", keys: []tea.KeyMsg{runes("2")}, want: 1},
		{name: "page 1 with enter", keys: []tea.KeyMsg{runes("1"), {Type: tea.KeyEnter}}, want: 0},
		{name: "page 18 does not exist", keys: []tea.KeyMsg{runes("5"), runes("1"), runes("8")}, want: 4},
		{name: "leading zero is ignored", keys: []tea.KeyMsg{runes("0"), runes("1"), runes("2")}, want: 11},
	}

	for _, tt := range tests {
		for _, k := range tt.keys {
			var cmd tea.Cmd
			m, cmd = update(t, m, k)
			assert.Nil(t, cmd, tt.name)
		}
		assert.Equal(t, tt.want, m.Pagination().Current, tt.name)
		assert.Zero(t, m.typed, tt.name)
	}
}

func TestModel_JumpPrompt(t *testing.T) {
	m := loaded(t, 150)

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, 1, m.typed)
	assert.Contains(t, m.View(), "Go to page: 1_")
	assert.Equal(t, 0, m.Pagination().Current)

	// esc cancels the prompt instead of quitting
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Zero(t, m.typed)
	assert.Contains(t, m.View(), "Page 1 of 17")

	// other navigation drops the typed number and still applies
	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, runes("l"))
	assert.Zero(t, m.typed)
	assert.Equal(t, 1, m.Pagination().Current)
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := New(context.Background(), staticFetch(nil, nil), Options{})
		_, cmd := update(t, m, msg)
		require.NotNil(t, cmd, msg.String())
		assert.Equal(t, tea.Quit(), cmd(), msg.String())
	}
}

func TestModel_ViewBrowsing(t *testing.T) {
	m := loaded(t, 20)
	m, _ = update(t, m, runes("l"))

	view := m.View()
	assert.Contains(t, view, "Pokédex")
	assert.Contains(t, view, "#010")
	assert.Contains(t, view, "Mon-18")
	assert.NotContains(t, view, "Mon-19")
	assert.Contains(t, view, "[2]")
	assert.Contains(t, view, "Page 2 of 3")
}

func TestModel_ViewEmpty(t *testing.T) {
	m := loaded(t, 0)

	assert.True(t, m.Pagination().IsEmpty())
	assert.Contains(t, m.View(), "No records.")
}

func TestModel_PerRow(t *testing.T) {
	m := loaded(t, 9)

	tests := []struct {
		width int
		want  int
	}{
		{width: 10, want: 1},
		{width: 60, want: 2},
		{width: 80, want: 3},
		{width: 200, want: 3},
	}
	for _, tt := range tests {
		m, _ = update(t, m, tea.WindowSizeMsg{Width: tt.width, Height: 40})
		assert.Equal(t, tt.want, m.perRow(), "width %d", tt.width)
	}
}
