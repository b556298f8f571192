package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// ProgressBar shows how many of Total steps are done.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Total: total,
		Width: width,
	}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders the bar followed by a "done/total" counter.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := max(p.Width-lipgloss.Width(result)-len(counter), 4)

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)

	return result
}
