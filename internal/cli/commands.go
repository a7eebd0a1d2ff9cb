package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/pokedex-client/internal/tui"
	"github.com/Sternrassler/pokedex-client/pkg/pagination"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func (a *app) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through records interactively",
		Long: "Fetch the records and open the interactive pager. When stdout is not a terminal\n" +
			"the first page is printed instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// runs after writeMetrics so its log lines still reach the file
			defer a.closeLogFile()
			defer a.writeMetrics()

			out := cmd.OutOrStdout()
			if !a.deps.IsTerminal(out) {
				a.logger.Debug().Msg("Stdout is not a terminal, printing first page")
				return a.printPage(cmd, 1, formatText)
			}

			if err := a.logToFile(); err != nil {
				return err
			}

			ctx := cmd.Context()
			m := tui.New(ctx, a.fetch, tui.Options{
				PageSize: a.cfg.Pagination.PageSize,
				Notifier: a.notifier,
			})
			return tui.Run(ctx, m, a.deps.ProgramOptions...)
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	var (
		page   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.writeMetrics()
			return a.printPage(cmd, page, format)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format: text or json")
	return cmd
}

func (a *app) newCategoriesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the type priority table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.cfg.Table()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatText:
				_, err = io.WriteString(out, tui.RenderCategories(table))
				return err
			case formatJSON:
				return writeJSON(out, append(table.Categories(), pokedex.Unknown))
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format: text or json")
	return cmd
}

// pageOutput is the JSON form of one page.
type pageOutput struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	HasPrev    bool             `json:"has_prev"`
	HasNext    bool             `json:"has_next"`
	Records    []pokedex.Record `json:"records"`
}

// printPage fetches all records and prints page (1-based).
func (a *app) printPage(cmd *cobra.Command, page int, format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
	}

	records, err := a.fetch(cmd.Context())
	if err != nil {
		a.reportFailure(err)
		return err
	}

	pager := pagination.NewPager(records, a.cfg.Pagination.PageSize)
	if pager.Len() > 0 && (page < 1 || page > pager.Len()) {
		return fmt.Errorf("page %d out of range (1-%d)", page, pager.Len())
	}
	state := pager.GoTo(page - 1)

	out := cmd.OutOrStdout()
	if format == formatJSON {
		current := pager.Current()
		if current == nil {
			current = []pokedex.Record{}
		}
		number := state.Current + 1
		if state.IsEmpty() {
			number = 0
		}
		return writeJSON(out, pageOutput{
			Page:       number,
			TotalPages: state.TotalPages,
			HasPrev:    state.HasPrev(),
			HasNext:    state.HasNext(),
			Records:    current,
		})
	}

	fmt.Fprintln(out, tui.RenderPage(pager.Current(), tui.CardsPerRow))
	if controls := tui.RenderControls(state); controls != "" {
		fmt.Fprintln(out, controls)
	}
	fmt.Fprintln(out, tui.RenderStatus(state))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
