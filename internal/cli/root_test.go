package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/pokedex-client/internal/notify"
	"github.com/Sternrassler/pokedex-client/internal/testutil"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

var kanto = []struct {
	name  string
	types []string
}{
	{"bulbasaur", []string{"grass", "poison"}},
	{"ivysaur", []string{"grass", "poison"}},
	{"venusaur", []string{"grass", "poison"}},
	{"charmander", []string{"fire"}},
	{"charmeleon", []string{"fire"}},
	{"charizard", []string{"fire", "flying"}},
	{"squirtle", []string{"water"}},
	{"wartortle", []string{"water"}},
	{"blastoise", []string{"water"}},
	{"caterpie", []string{"bug"}},
	{"metapod", []string{"bug"}},
	{"butterfree", []string{"bug", "flying"}},
}

type harness struct {
	mock     *testutil.MockPokeAPI
	recorder *notify.Recorder
	env      map[string]string
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Chdir(t.TempDir())

	mock := testutil.NewMockPokeAPI()
	t.Cleanup(mock.Close)
	for i, p := range kanto {
		mock.SetPokemon(i+1, p.name, p.types...)
	}

	return &harness{
		mock:     mock,
		recorder: &notify.Recorder{},
		env:      map[string]string{"POKEDEX_BASE_URL": mock.BaseURL()},
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
	}
}

func (h *harness) deps() Deps {
	return Deps{
		LookupEnv: func(key string) (string, bool) {
			v, ok := h.env[key]
			return v, ok
		},
		IsTerminal: func(io.Writer) bool { return false },
		Notifier:   h.recorder,
	}
}

func (h *harness) run(args ...string) error {
	cmd := NewRootCmdWithDeps("test", h.deps())
	cmd.SetOut(h.out)
	cmd.SetErr(h.errOut)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestList_JSON(t *testing.T) {
	h := newHarness(t)

	err := h.run("list", "--count", "13", "--page", "2", "--page-size", "5", "--format", "json")
	require.NoError(t, err)

	var got pageOutput
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))

	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 3, got.TotalPages)
	assert.True(t, got.HasPrev)
	assert.True(t, got.HasNext)
	require.Len(t, got.Records, 5)
	assert.Equal(t, 6, got.Records[0].ID)
	assert.Equal(t, "Charizard", got.Records[0].Name)
	assert.Equal(t, "fire", got.Records[0].Category)
	assert.Equal(t, "010", got.Records[4].PaddedID)

	assert.Equal(t, 12, h.mock.GetRequestCount())
	assert.Empty(t, h.recorder.Sent())
}

func TestList_SinglePageOfNine(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("list", "--count", "10", "-o", "json"))

	var got pageOutput
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	assert.False(t, got.HasPrev)
	assert.False(t, got.HasNext)
	assert.Len(t, got.Records, 9)
}

func TestList_Text(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("list", "--count", "10"))

	out := h.out.String()
	assert.Contains(t, out, "Bulbasaur")
	assert.Contains(t, out, "#009")
	assert.Contains(t, out, "Type: water")
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "Page 1 of 1")
}

func TestList_EmptyRange(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("list", "--count", "1", "-o", "json"))

	var got pageOutput
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, 0, got.Page)
	assert.Equal(t, 0, got.TotalPages)
	assert.NotNil(t, got.Records)
	assert.Empty(t, got.Records)
	assert.Equal(t, 0, h.mock.GetRequestCount())
}

func TestList_PageOutOfRange(t *testing.T) {
	h := newHarness(t)

	err := h.run("list", "--count", "10", "--page", "2")
	assert.ErrorContains(t, err, "page 2 out of range (1-1)")
}

func TestList_BadFormat(t *testing.T) {
	h := newHarness(t)

	err := h.run("list", "--format", "yaml")
	assert.ErrorContains(t, err, `unknown format "yaml"`)
	assert.Equal(t, 0, h.mock.GetRequestCount())
}

func TestList_FetchFailureNotifies(t *testing.T) {
	h := newHarness(t)
	h.mock.SetPokemonResponse(3, testutil.NewServerErrorResponse())

	err := h.run("list", "--count", "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, pokedex.ErrRetrieval)

	assert.Empty(t, h.out.String(), "no records render")
	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelDanger, Message: notify.FetchFailedMessage},
	}, h.recorder.Sent())
	assert.Contains(t, h.errOut.String(), "Fetch failed")
}

func TestList_ConcurrentMatchesSequential(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("list", "--count", "13", "--page-size", "20", "-o", "json"))
	var sequential pageOutput
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &sequential))

	h.out.Reset()
	require.NoError(t, h.run("list", "--count", "13", "--page-size", "20", "--concurrency", "4", "-o", "json"))
	var concurrent pageOutput
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &concurrent))

	assert.Equal(t, sequential, concurrent)
}

func TestBrowse_FallsBackWithoutTerminal(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("browse", "--count", "10"))
	assert.Contains(t, h.out.String(), "Page 1 of 1")
}

func TestBrowse_ClosesLogFileWhenPagerFails(t *testing.T) {
	h := newHarness(t)

	deps := h.deps()
	deps.IsTerminal = func(io.Writer) bool { return true }
	deps.ProgramOptions = []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	}
	a := &app{deps: deps.withDefaults()}
	cmd := newRootCmd("test", a)
	cmd.SetOut(h.out)
	cmd.SetErr(h.errOut)
	cmd.SetArgs([]string{"browse", "--count", "10"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, tea.ErrProgramKilled)
	assert.Nil(t, a.logFile, "log file must be closed when the pager fails")

	_, statErr := os.Stat("pokedex.log")
	assert.NoError(t, statErr)
}

func TestCategories(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("categories", "-o", "json"))

	var got []pokedex.Category
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	require.Len(t, got, 15)
	assert.Equal(t, "fire", got[0].Name)
	assert.Equal(t, pokedex.Unknown, got[14])
	assert.Equal(t, 0, h.mock.GetRequestCount())
}

func TestCategories_FromConfigFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - name: ice
    color: "#A0E0F0"
`), 0o600))

	require.NoError(t, h.run("categories", "--config", path))
	assert.Contains(t, h.out.String(), "ice")
	assert.NotContains(t, h.out.String(), "fire")
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{name: "zero count", args: []string{"list", "--count", "0"}, wantErr: "fetch.count"},
		{name: "zero page size", args: []string{"list", "--page-size", "0"}, wantErr: "page_size"},
		{name: "bad env count", args: []string{"list"}, env: map[string]string{"POKEDEX_COUNT": "many"}, wantErr: "POKEDEX_COUNT"},
		{name: "missing config", args: []string{"list", "--config", "nope.yaml"}, wantErr: "read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			for k, v := range tt.env {
				h.env[k] = v
			}
			err := h.run(tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, 0, h.mock.GetRequestCount())
		})
	}
}

func TestMetricsTextfile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "pokedex.prom")

	require.NoError(t, h.run("list", "--count", "4", "--metrics-out", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pokedex_records_fetched_total")
	assert.Contains(t, string(data), "pokeapi_requests_total")
}

func TestRedisURLInvalid(t *testing.T) {
	h := newHarness(t)

	err := h.run("list", "--redis", "not-a-url")
	assert.ErrorContains(t, err, "parse redis url")
	assert.Len(t, h.recorder.Sent(), 1)
}

func TestCacheClear_RequiresRedis(t *testing.T) {
	h := newHarness(t)

	err := h.run("cache", "clear")
	assert.ErrorIs(t, err, errNoRedis)
}
