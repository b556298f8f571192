// Package dashboard derives the displayed figures from a score report and
// renders them as score boxes and line charts.
package dashboard

import (
	"strconv"

	"github.com/abhisek/bloomquiz/internal/api"
)

// Category is one cognitive-level score and its share of the three-way sum.
type Category struct {
	Name        string
	Score       float64
	Percent     float64
	PercentText string
}

// Breakdown is everything the dashboard shows. It is derived purely from a
// report, so equal reports give equal breakdowns.
type Breakdown struct {
	HasReport bool

	// Degenerate is set when the category scores sum to zero or less and
	// no meaningful share can be computed.
	Degenerate bool

	Feedback      string
	TotalScore    float64
	TotalText     string
	Categories    [3]Category
	AverageTimeMs float64
	AverageText   string
	Correct       int
	Incorrect     int
}

// Category names in display order.
const (
	Remembering   = "Remembering"
	Understanding = "Understanding"
	Applying      = "Applying"
)

// Percentages returns each score's share of r+u+a as a percentage. ok is
// false when the sum is not positive; all shares are then zero.
func Percentages(r, u, a float64) (pr, pu, pa float64, ok bool) {
	sum := r + u + a
	if !(sum > 0) {
		return 0, 0, 0, false
	}
	return r / sum * 100, u / sum * 100, a / sum * 100, true
}

// Format1 renders v rounded to one decimal place.
func Format1(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

// Derive computes the breakdown. A nil report renders every figure as
// zero.
func Derive(report *api.ScoreReport) Breakdown {
	var r api.ScoreReport
	if report != nil {
		r = *report
	}

	pr, pu, pa, ok := Percentages(r.RememberingScore, r.UnderstandingScore, r.ApplyingScore)

	b := Breakdown{
		HasReport:     report != nil,
		Degenerate:    report != nil && !ok,
		Feedback:      r.Feedback,
		TotalScore:    r.TotalScore,
		TotalText:     Format1(r.TotalScore),
		AverageTimeMs: r.AverageTimeTaken,
		AverageText:   formatMillis(r.AverageTimeTaken),
		Correct:       r.CorrectAnswers,
		Incorrect:     r.IncorrectAnswers,
	}
	b.Categories = [3]Category{
		{Name: Remembering, Score: r.RememberingScore, Percent: pr, PercentText: Format1(pr) + "%"},
		{Name: Understanding, Score: r.UnderstandingScore, Percent: pu, PercentText: Format1(pu) + "%"},
		{Name: Applying, Score: r.ApplyingScore, Percent: pa, PercentText: Format1(pa) + "%"},
	}
	return b
}

// Scores returns the raw category scores in display order.
func (b Breakdown) Scores() []float64 {
	return []float64{b.Categories[0].Score, b.Categories[1].Score, b.Categories[2].Score}
}

func formatMillis(ms float64) string {
	if ms < 1000 {
		return Format1(ms) + " ms"
	}
	return Format1(ms/1000) + " s"
}
