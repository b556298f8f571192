package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/guptarohit/asciigraph"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// Notes shown in place of figures that cannot be computed.
const (
	NoteNoReport    = "No results to show yet. Take a quiz to see your scores."
	NoteDegenerate  = "No category scores were reported, so each share shows 0.0%."
	NoteFewSessions = "Average time per session appears after two or more sessions."
)

const chartHeight = 8

// Render draws the dashboard for a breakdown and the user's per-session
// average times, oldest first. Output depends only on its arguments.
func Render(b Breakdown, history []float64, width int) string {
	if width <= 0 {
		width = 80
	}

	var sections []string

	sections = append(sections, theme.Heading.Render("Feedback"))
	switch {
	case !b.HasReport:
		sections = append(sections, theme.Hint.Render(NoteNoReport))
	case strings.TrimSpace(b.Feedback) == "":
		sections = append(sections, theme.Hint.Render("No feedback was returned."))
	default:
		sections = append(sections, theme.Body.Width(min(width, 100)).Render(b.Feedback))
	}
	sections = append(sections, "")

	sections = append(sections, scoreBoxes(b, width))
	if b.Degenerate {
		sections = append(sections, theme.Hint.Render(NoteDegenerate))
	}
	if b.HasReport && b.Correct+b.Incorrect > 0 {
		sections = append(sections, theme.Body.Render(fmt.Sprintf(
			"Correct: %d   Incorrect: %d   Average time: %s", b.Correct, b.Incorrect, b.AverageText)))
	}
	sections = append(sections, "")

	sections = append(sections, CategoryChart(b, width))
	sections = append(sections, "")
	sections = append(sections, TimeChart(history, width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func scoreBoxes(b Breakdown, width int) string {
	boxWidth := 24
	box := func(title, value string) string {
		return theme.ScoreBox.Width(boxWidth).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				theme.Hint.Render(title),
				theme.ScoreValue.Render(value),
			),
		)
	}

	boxes := []string{box("Total Score", b.TotalText)}
	for _, c := range b.Categories {
		boxes = append(boxes, box(c.Name+" Score", c.PercentText))
	}

	if width >= 4*boxWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, boxes[2], boxes[3]),
	)
}

func chartWidth(width int) int {
	return max(20, min(width-12, 72))
}

// CategoryChart plots the three category scores in display order.
func CategoryChart(b Breakdown, width int) string {
	plot := asciigraph.Plot(b.Scores(),
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth(width)),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("Scores: %s, %s, %s", Remembering, Understanding, Applying)),
	)
	return theme.Chart.Render(plot)
}

// TimeChart plots one average-time point per session.
func TimeChart(history []float64, width int) string {
	if len(history) < 2 {
		return theme.Hint.Render(NoteFewSessions)
	}
	plot := asciigraph.Plot(history,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth(width)),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("Average time taken per session (ms), last %d sessions", len(history))),
	)
	return theme.TimeChart.Render(plot)
}
