// Package cli wires the pokedex commands: browse, list and categories.
package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Sternrassler/pokedex-client/internal/config"
	"github.com/Sternrassler/pokedex-client/internal/notify"
	"github.com/Sternrassler/pokedex-client/pkg/logging"
)

// Deps holds the process collaborators. Zero fields fall back to the real ones.
type Deps struct {
	LookupEnv  func(string) (string, bool)
	IsTerminal func(w io.Writer) bool
	// Notifier replaces the configured log/desktop notifiers.
	Notifier notify.Notifier
	// ProgramOptions are appended to the pager's Bubble Tea options.
	ProgramOptions []tea.ProgramOption
}

func (d Deps) withDefaults() Deps {
	if d.LookupEnv == nil {
		d.LookupEnv = os.LookupEnv
	}
	if d.IsTerminal == nil {
		d.IsTerminal = isTerminal
	}
	return d
}

// isTerminal checks if w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// app is the state shared by the subcommands of one invocation.
type app struct {
	deps     Deps
	cfg      config.Config
	notifier notify.Notifier
	logger   zerolog.Logger
	logFile  *os.File
	noNotify bool
}

// NewRootCmd creates the root command for the pokedex CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithDeps(ver, Deps{})
}

// NewRootCmdWithDeps creates the root command with explicit collaborators for testability.
func NewRootCmdWithDeps(ver string, deps Deps) *cobra.Command {
	return newRootCmd(ver, &app{deps: deps.withDefaults()})
}

func newRootCmd(ver string, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pokedex",
		Short:   "Browse the first generation of Pokémon in the terminal",
		Long:    "pokedex fetches records from PokeAPI, colors each by its primary type and pages through them.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default ./"+config.DefaultPath+" if present)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("base-url", "", "PokeAPI pokemon resource URL")
	flags.Int("count", 0, "fetch ids 1..count-1")
	flags.Int("page-size", 0, "records per page")
	flags.Int("concurrency", 0, "maximum requests in flight (1 = sequential)")
	flags.String("redis", "", "Redis URL for the response cache, e.g. redis://localhost:6379/0")
	flags.String("metrics-out", "", "write Prometheus metrics to this textfile on exit")
	flags.Bool("no-notify", false, "disable desktop notifications")

	cmd.AddCommand(a.newBrowseCmd(), a.newListCmd(), a.newCategoriesCmd(), a.newCacheCmd())
	return cmd
}

const rootCmdExample = `  # Page through the records interactively
  pokedex browse

  # Print the second page as JSON
  pokedex list --page 2 --format json

  # Fetch ids 1..150 with four requests in flight, cached in Redis
  pokedex browse --count 151 --concurrency 4 --redis redis://localhost:6379/0

  # Show the type priority table
  pokedex categories

  # Drop cached responses for the configured API host
  pokedex cache clear --redis redis://localhost:6379/0`

// setup resolves configuration (file, environment, flags) and logging.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.deps.LookupEnv); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.configureLogging(cmd.ErrOrStderr())

	if a.deps.Notifier != nil {
		a.notifier = a.deps.Notifier
	} else {
		a.noNotify, _ = cmd.Flags().GetBool("no-notify")
		a.notifier = a.defaultNotifier()
	}
	return nil
}

// defaultNotifier logs every notification and shows desktop ones at or above
// notify.min_level unless --no-notify is set.
func (a *app) defaultNotifier() notify.Notifier {
	notifiers := notify.Multi{notify.NewLogWith(logging.NewLogger("notify"))}
	if a.cfg.Notify.Desktop && !a.noNotify {
		// Validate already checked the level name
		level, _ := a.cfg.Notify.DesktopLevel()
		notifiers = append(notifiers, notify.NewDesktop(level))
	}
	return notifiers
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		if debug, _ := flags.GetBool("debug"); debug {
			cfg.Log.Level = string(logging.LevelDebug)
		}
	}
	if flags.Changed("base-url") {
		cfg.API.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("count") {
		cfg.Fetch.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("page-size") {
		cfg.Pagination.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Changed("concurrency") {
		cfg.Fetch.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("redis") {
		cfg.Cache.RedisURL, _ = flags.GetString("redis")
	}
	if flags.Changed("metrics-out") {
		cfg.Metrics.Textfile, _ = flags.GetString("metrics-out")
	}
}

// configureLogging points the global logger at w.
func (a *app) configureLogging(w io.Writer) {
	lc := logging.DefaultConfig()
	lc.Level = logging.LogLevel(a.cfg.Log.Level)
	lc.Pretty = a.cfg.Log.Pretty
	lc.Output = w
	logging.Setup(lc)
	a.logger = logging.NewLogger("cli")
}

// logToFile moves logging off the terminal while the pager owns it.
func (a *app) logToFile() error {
	var w io.Writer = io.Discard
	if a.cfg.Log.File != "" {
		f, err := logging.OpenFile(a.cfg.Log.File)
		if err != nil {
			return err
		}
		a.logFile = f
		w = f
	}
	a.configureLogging(w)
	if a.deps.Notifier == nil {
		// rebuild so the log notifier writes to w too
		a.notifier = a.defaultNotifier()
	}
	return nil
}

func (a *app) closeLogFile() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
