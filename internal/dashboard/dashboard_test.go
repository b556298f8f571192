package dashboard

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bloomquiz/internal/api"
)

func TestDerive_KnownPercentages(t *testing.T) {
	b := Derive(&api.ScoreReport{
		Feedback:           "Good recall, work on application.",
		TotalScore:         62.46,
		RememberingScore:   40,
		UnderstandingScore: 30,
		ApplyingScore:      20,
		AverageTimeTaken:   4200,
	})

	assert.True(t, b.HasReport)
	assert.False(t, b.Degenerate)
	assert.Equal(t, "62.5", b.TotalText)
	assert.Equal(t, "44.4%", b.Categories[0].PercentText)
	assert.Equal(t, "33.3%", b.Categories[1].PercentText)
	assert.Equal(t, "22.2%", b.Categories[2].PercentText)
	assert.Equal(t, "4.2 s", b.AverageText)
}

func TestDerive_NilReport(t *testing.T) {
	var b Breakdown
	require.NotPanics(t, func() { b = Derive(nil) })

	assert.False(t, b.HasReport)
	assert.False(t, b.Degenerate)
	assert.Equal(t, "0.0", b.TotalText)
	for _, c := range b.Categories {
		assert.Equal(t, "0.0%", c.PercentText)
	}
	assert.Empty(t, b.Feedback)
}

func TestDerive_AllZeroScores(t *testing.T) {
	b := Derive(&api.ScoreReport{Feedback: "Try again"})
	assert.True(t, b.Degenerate)
	for _, c := range b.Categories {
		assert.Equal(t, "0.0%", c.PercentText)
		assert.False(t, math.IsNaN(c.Percent))
	}
}

func TestPercentagesSumToHundred(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		r, u, a := rng.Float64()*100, rng.Float64()*100, rng.Float64()*100
		if r+u+a == 0 {
			continue
		}
		b := Derive(&api.ScoreReport{RememberingScore: r, UnderstandingScore: u, ApplyingScore: a})

		var sum float64
		for _, c := range b.Categories {
			v, err := strconv.ParseFloat(strings.TrimSuffix(c.PercentText, "%"), 64)
			require.NoError(t, err)
			sum += v
		}
		assert.InDelta(t, 100, sum, 0.3, "r=%v u=%v a=%v", r, u, a)
	}
}

func TestFormat1(t *testing.T) {
	assert.Equal(t, "0.0", Format1(0))
	assert.Equal(t, "0.0", Format1(-0.01))
	assert.Equal(t, "12.3", Format1(12.34))
	assert.Equal(t, "100.0", Format1(99.96))
}

func TestRender_Idempotent(t *testing.T) {
	report := &api.ScoreReport{Feedback: "ok", TotalScore: 50, RememberingScore: 40, UnderstandingScore: 30, ApplyingScore: 20}
	history := []float64{5000, 4200, 3100}

	first := Render(Derive(report), history, 100)
	second := Render(Derive(report), history, 100)
	assert.Equal(t, first, second)
}

func TestRender_Contents(t *testing.T) {
	out := Render(Derive(&api.ScoreReport{
		Feedback: "Nice work", TotalScore: 75, RememberingScore: 40, UnderstandingScore: 30, ApplyingScore: 20,
		CorrectAnswers: 4, IncorrectAnswers: 1,
	}), []float64{3000}, 100)

	for _, want := range []string{"Nice work", "Total Score", "75.0", "44.4%", "33.3%", "22.2%", "Correct: 4", NoteFewSessions} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "NaN")
}

func TestRender_NoReportAndDegenerate(t *testing.T) {
	out := Render(Derive(nil), nil, 60)
	assert.Contains(t, out, NoteNoReport)
	assert.Contains(t, out, "0.0%")
	assert.NotContains(t, out, "NaN")

	out = Render(Derive(&api.ScoreReport{Feedback: "?"}), nil, 60)
	assert.Contains(t, out, NoteDegenerate)
}

func TestTimeChart_PlotsHistory(t *testing.T) {
	out := TimeChart([]float64{5000, 4000, 3000}, 80)
	assert.Contains(t, out, "last 3 sessions")
	assert.NotContains(t, out, NoteFewSessions)
}
