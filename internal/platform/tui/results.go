package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/codejam/internal/economy"
)

// newScoresTable builds the per-category results table.
func newScoresTable(scores economy.Scores, height int) table.Model {
	columns := []table.Column{
		{Title: "Category", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Rating", Width: 7},
	}

	rows := make([]table.Row, 0, economy.ScoreCount)
	for i, s := range scores {
		rows = append(rows, table.Row{
			economy.ScoreName(i),
			fmt.Sprintf("%.2f", s),
			starString(economy.Stars(s)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(economy.ScoreCount+1, max(height-10, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// starString renders a 1..5 rating as filled and empty stars.
func starString(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

func (m EditorModel) viewResults() string {
	snap := m.engine.Snapshot()
	s := snap.State

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("J A M   S U B M I T T E D", m.width)))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%s lines, %s entities, %s tech debt, %d upgrades in %s",
		formatAmount(s.Lines), formatAmount(s.Entities), formatAmount(s.TechDebt),
		s.UpgradesInstalled, formatElapsed(snap.Elapsed))
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(max(m.width, 1), lipgloss.Center, paneStyle.Render(m.results.View())))
	b.WriteString("\n\n")

	overall := fmt.Sprintf("Overall %.2f  %s", snap.Scores.Overall(), starString(economy.Stars(snap.Scores.Overall())))
	b.WriteString(centerText(cursorStyle.Render(overall), m.width))
	b.WriteString("\n")

	switch {
	case m.saveErr != nil:
		b.WriteString(centerText(costTooHigh.Render("Result not saved: "+m.saveErr.Error()), m.width))
	case m.resultID != "":
		b.WriteString(centerText(dimStyle.Render("Saved as "+m.resultID), m.width))
	}
	b.WriteString("\n\n")

	controls := "Enter/C-r: New jam  |  Esc: Menu  |  C-c: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}
