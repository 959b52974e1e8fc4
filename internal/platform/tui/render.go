package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/codejam/internal/core"
	"github.com/vovakirdan/codejam/internal/economy"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, core.ColorCount)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c := core.ColorRed; c < core.ColorCount; c++ {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
	}
	return styles
}()

var (
	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	costOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	costTooHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	flashStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214"))
)

// Layout constants of the editor screen.
const (
	minWidthForPanel = 70 // Below this the upgrade panel goes under the code
	panelWidth       = 34
	fieldHeight      = 6 // Rows of the entity field
)

// cell is one character of the entity field.
type cell struct {
	r     rune
	color core.Color
}

// field is a fixed-size grid the entity visuals are drawn into.
type field struct {
	w, h  int
	cells []cell
}

func newField(w, h int) *field {
	w = max(w, 1)
	h = max(h, 1)
	f := &field{w: w, h: h, cells: make([]cell, w*h)}
	for i := range f.cells {
		f.cells[i] = cell{r: ' '}
	}
	return f
}

// plot draws one entity. Positions are in the unit square.
func (f *field) plot(e economy.SpawnedEntity) {
	x := int(e.Position.X * float64(f.w-1))
	y := int(e.Position.Y * float64(f.h-1))
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.cells[y*f.w+x] = cell{r: entityGlyph(e.Size), color: e.Color}
}

func entityGlyph(size float32) rune {
	switch {
	case size < 0.8:
		return '.'
	case size < 1.1:
		return 'o'
	case size < 1.5:
		return 'O'
	default:
		return '@'
	}
}

// String renders the field. Groups adjacent cells with the same color to
// minimize ANSI escape sequences.
func (f *field) String() string {
	var sb strings.Builder
	sb.Grow(f.w*f.h*2 + f.h)

	for y := range f.h {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < f.w {
			startColor := f.cells[y*f.w+x].color

			var run strings.Builder
			for x < f.w {
				c := f.cells[y*f.w+x]
				if c.color != startColor {
					break
				}
				run.WriteRune(c.r)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderStatus renders the counter bar at the top of the editor.
func renderStatus(snap economy.Snapshot, paused bool, width int) string {
	s := snap.State
	text := fmt.Sprintf("lines %s  entities %s  debt %s  upgrades %d  %s",
		formatAmount(s.Lines), formatAmount(s.Entities), formatAmount(s.TechDebt),
		s.UpgradesInstalled, formatElapsed(snap.Elapsed))
	bar := statusStyle.Render(text)
	if paused {
		bar = lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", pausedStyle.Render("PAUSED"))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, bar)
}

// renderCode renders the last lines of the typed code.
func renderCode(lines []string, width, height int) string {
	width = max(width, 10)
	height = max(height, 1)

	start := max(len(lines)-height, 0)
	visible := make([]string, 0, height)
	for _, line := range lines[start:] {
		if len(line) > width {
			line = line[:width]
		}
		visible = append(visible, line)
	}
	for len(visible) < height {
		visible = append(visible, "")
	}
	if n := len(visible) - 1; n >= 0 {
		visible[n] = visible[n] + cursorStyle.Render("_")
	}

	return paneStyle.Width(width + 2).Render(codeStyle.Render(strings.Join(visible, "\n")))
}

// renderOffers renders the upgrade panel.
func renderOffers(offers []economy.Offer, cursor, width int) string {
	var b strings.Builder
	b.WriteString(cursorStyle.Render("Upgrades"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", max(width-4, 1)))
	b.WriteString("\n")

	if len(offers) == 0 {
		b.WriteString(dimStyle.Render("Nothing on offer."))
		return paneStyle.Width(width).Render(b.String())
	}

	for i, o := range offers {
		prefix := "  "
		name := o.Name
		if i == cursor {
			prefix = "> "
			name = cursorStyle.Render(name)
		}
		cost := costTooHigh
		if o.Affordable {
			cost = costOK
		}
		b.WriteString(prefix + name + "  " + cost.Render(formatAmount(o.Cost)))
		if o.Remaining != economy.Unlimited {
			b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d left)", o.Remaining)))
		}
		b.WriteString("\n")
		if i == cursor && o.Description != "" {
			b.WriteString(dimStyle.Width(width - 4).Render("  " + o.Description))
			b.WriteString("\n")
		}
	}

	return paneStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// renderEntities draws the entity field.
func renderEntities(entities []economy.SpawnedEntity, width, height int) string {
	f := newField(width, height)
	for _, e := range entities {
		f.plot(e)
	}
	return paneStyle.Render(f.String())
}

// formatAmount prints a counter the way the status bar shows it.
func formatAmount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// formatElapsed prints simulated seconds as mm:ss.
func formatElapsed(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
