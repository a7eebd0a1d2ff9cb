package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sternrassler/pokedex-client/pkg/pagination"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// Control labels.
const (
	PrevLabel = "‹ Prev"
	NextLabel = "Next ›"
)

// RenderCard draws one record on its category color.
func RenderCard(r pokedex.Record) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		idStyle.Render("#"+r.PaddedID),
		nameStyle.Render(r.Name),
		categoryStyle.Render("Type: "+r.Category),
	)
	return cardStyle.Background(lipgloss.Color(r.Color)).Render(body)
}

// RenderPage lays records out in rows of perRow cards.
func RenderPage(records []pokedex.Record, perRow int) string {
	if len(records) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("No records.")
	}
	if perRow < 1 {
		perRow = CardsPerRow
	}

	rows := make([]string, 0, (len(records)+perRow-1)/perRow)
	for start := 0; start < len(records); start += perRow {
		end := min(start+perRow, len(records))
		cards := make([]string, 0, end-start)
		for _, r := range records[start:end] {
			cards = append(cards, RenderCard(r))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderControls draws the page bar: prev, one entry per page with the
// current one highlighted, next. Prev and next render disabled at the edges.
func RenderControls(state pagination.State) string {
	if state.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, state.TotalPages+2)
	parts = append(parts, button(PrevLabel, state.HasPrev()))
	for i := 0; i < state.TotalPages; i++ {
		if i == state.Current {
			parts = append(parts, activePageStyle.Render(fmt.Sprintf("[%d]", i+1)))
			continue
		}
		parts = append(parts, pageStyle.Render(fmt.Sprintf("%d", i+1)))
	}
	parts = append(parts, button(NextLabel, state.HasNext()))

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func button(label string, enabled bool) string {
	if enabled {
		return buttonStyle.Render(label)
	}
	return disabledStyle.Render(label)
}

// RenderStatus summarizes the current position, e.g. "Page 2 of 5".
func RenderStatus(state pagination.State) string {
	if state.IsEmpty() {
		return "Page 0 of 0"
	}
	return fmt.Sprintf("Page %d of %d", state.Current+1, state.TotalPages)
}

// RenderCategories lists a table in priority order with color swatches.
func RenderCategories(table pokedex.Table) string {
	var b strings.Builder
	for i, c := range append(table.Categories(), pokedex.Unknown) {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Color)).Render("    ")
		fmt.Fprintf(&b, "%2d. %s %-10s %s\n", i+1, swatch, c.Name, c.Color)
	}
	return b.String()
}
