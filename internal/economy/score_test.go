package economy

import (
	"math"
	"testing"
)

func TestScoreAnchors(t *testing.T) {
	bounds := []Bounds{
		{Lower: 0, Upper: 1},
		{Lower: -5, Upper: 25},
		{Lower: 0, Upper: 1e9},
		{Lower: -1e6, Upper: 3},
		{Lower: -1e308, Upper: 1e308},
	}

	for _, b := range bounds {
		lo := Score(b.Lower, b.Lower, b.Upper)
		mid := Score((b.Lower+b.Upper)/2, b.Lower, b.Upper)
		hi := Score(b.Upper, b.Lower, b.Upper)

		if math.Abs(lo-1.477) > 0.001 {
			t.Errorf("Score(lower) for %+v = %.4f, expected ~1.477", b, lo)
		}
		if math.Abs(mid-3) > 1e-9 {
			t.Errorf("Score(midpoint) for %+v = %.4f, expected 3", b, mid)
		}
		if math.Abs(hi-4.523) > 0.001 {
			t.Errorf("Score(upper) for %+v = %.4f, expected ~4.523", b, hi)
		}
	}
}

func TestScoreInfinities(t *testing.T) {
	bounds := []Bounds{
		{Lower: -1, Upper: 1},
		{Lower: 0, Upper: 1e9},
		{Lower: -1e9, Upper: 1e9},
		{Lower: -1e32, Upper: 1e32},
		{Lower: -1e308, Upper: 1e308},
		{Lower: -math.MaxFloat64, Upper: math.MaxFloat64},
	}

	for _, b := range bounds {
		if got := Score(math.Inf(1), b.Lower, b.Upper); math.Abs(got-5) > 0.001 {
			t.Errorf("Score(+Inf) for %+v = %f, expected 5", b, got)
		}
		if got := Score(math.Inf(-1), b.Lower, b.Upper); math.Abs(got-1) > 0.001 {
			t.Errorf("Score(-Inf) for %+v = %f, expected 1", b, got)
		}
	}
}

func TestScoreIsTotal(t *testing.T) {
	tests := []struct {
		name         string
		x, lo, hi    float64
		expectInside bool
	}{
		{"nan input", math.NaN(), 0, 1, true},
		{"huge input", math.MaxFloat64, 0, 1, true},
		{"huge negative input", -math.MaxFloat64, 0, 1, true},
		{"degenerate bounds", 5, 3, 3, true},
		{"inverted bounds", 0, 10, -10, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.x, tc.lo, tc.hi)
			if math.IsNaN(got) || got < 1 || got > 5 {
				t.Errorf("Score(%g, %g, %g) = %f, expected value in [1, 5]", tc.x, tc.lo, tc.hi, got)
			}
		})
	}
}

func TestScoreMonotonic(t *testing.T) {
	prev := Score(-100, -5, 25)
	for x := -99.0; x <= 100; x++ {
		cur := Score(x, -5, 25)
		if cur < prev {
			t.Fatalf("Score not monotonic at x=%g: %f < %f", x, cur, prev)
		}
		prev = cur
	}
}

func TestCalculateScores(t *testing.T) {
	bounds := DefaultScoreBounds()
	s := State{
		FunScore:          10,
		PresentationScore: 10,
		Entities:          500,
		Lines:             2500,
	}

	scores := CalculateScores(s, bounds)

	if scores[ScoreTheme] != scores[ScoreEntities] {
		t.Errorf("theme (%f) and entities (%f) should read the same input", scores[ScoreTheme], scores[ScoreEntities])
	}
	if math.Abs(scores[ScoreFun]-3) > 1e-9 {
		t.Errorf("fun at midpoint = %f, expected 3", scores[ScoreFun])
	}
	if math.Abs(scores[ScoreLines]-3) > 1e-9 {
		t.Errorf("lines at midpoint = %f, expected 3", scores[ScoreLines])
	}

	sum := 0.0
	for i := range ScoreOverall {
		sum += scores[i]
	}
	if math.Abs(scores.Overall()-sum/5) > 1e-12 {
		t.Errorf("Overall = %f, expected mean %f", scores.Overall(), sum/5)
	}
}

func TestCalculateScoresExtremeState(t *testing.T) {
	s := State{
		FunScore:          math.Inf(1),
		PresentationScore: math.Inf(-1),
		Entities:          math.NaN(),
		Lines:             math.MaxFloat64,
	}
	scores := CalculateScores(s, DefaultScoreBounds())
	for i, v := range scores {
		if math.IsNaN(v) || v < 1 || v > 5 {
			t.Errorf("%s = %f, expected value in [1, 5]", ScoreName(i), v)
		}
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{1.0, 1},
		{1.49, 1},
		{2.5, 3},
		{4.52, 5},
		{0, 1},
		{7, 5},
		{math.NaN(), 1},
	}
	for _, tc := range tests {
		if got := Stars(tc.score); got != tc.want {
			t.Errorf("Stars(%g) = %d, expected %d", tc.score, got, tc.want)
		}
	}
}
