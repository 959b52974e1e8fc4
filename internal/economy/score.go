package economy

import (
	"math"

	"github.com/vovakirdan/codejam/internal/config"
)

// Score categories, in results-screen order.
const (
	ScoreFun = iota
	ScorePresentation
	ScoreTheme
	ScoreEntities
	ScoreLines
	ScoreOverall
	ScoreCount
)

var scoreNames = [ScoreCount]string{
	"Fun",
	"Presentation",
	"Theme Interpretation",
	"Entities",
	"Lines of Code",
	"Overall",
}

// Bounds are the lower/upper anchors of a score curve.
type Bounds struct {
	Lower, Upper float64
}

// ScoreBounds holds the curve of every scored category.
type ScoreBounds struct {
	Fun          Bounds
	Presentation Bounds
	Theme        Bounds
	Entities     Bounds
	Lines        Bounds
}

// BoundsFromConfig converts the YAML scoring section.
func BoundsFromConfig(cfg config.ScoringConfig) ScoreBounds {
	conv := func(b config.BoundsConfig) Bounds { return Bounds{Lower: b.Lower, Upper: b.Upper} }
	return ScoreBounds{
		Fun:          conv(cfg.Fun),
		Presentation: conv(cfg.Presentation),
		Theme:        conv(cfg.Theme),
		Entities:     conv(cfg.Entities),
		Lines:        conv(cfg.Lines),
	}
}

// DefaultScoreBounds returns the built-in curves.
func DefaultScoreBounds() ScoreBounds {
	return BoundsFromConfig(config.DefaultScoringConfig())
}

// Scores is the rank vector: five categories followed by their mean.
type Scores [ScoreCount]float64

// Score maps x onto (1, 5) with a logistic curve that passes through ~1.48
// at lower, 3 at the midpoint and ~4.52 at upper. Infinite inputs saturate.
// NaN inputs and degenerate bounds never panic.
func Score(x, lower, upper float64) float64 {
	if math.IsNaN(x) {
		return 1
	}
	if !(upper > lower) {
		switch {
		case x > lower:
			return 5
		case x < lower:
			return 1
		default:
			return 3
		}
	}
	switch {
	case math.IsInf(x, 1):
		return 5
	case math.IsInf(x, -1):
		return 1
	}
	// k*(x-x0) with k = 4/(upper-lower), on halves so that bounds near
	// MaxFloat64 do not overflow.
	half := upper/2 - lower/2
	mid := lower/2 + upper/2
	z := (x/2 - mid/2) * (4 / half)
	if math.IsNaN(z) {
		return 3
	}
	return 1 + 4/(1+math.Exp(-z))
}

// CalculateScores ranks a final state. Theme interpretation and entities
// both read the entity count.
func CalculateScores(s State, b ScoreBounds) Scores {
	var out Scores
	out[ScoreFun] = Score(s.FunScore, b.Fun.Lower, b.Fun.Upper)
	out[ScorePresentation] = Score(s.PresentationScore, b.Presentation.Lower, b.Presentation.Upper)
	out[ScoreTheme] = Score(s.Entities, b.Theme.Lower, b.Theme.Upper)
	out[ScoreEntities] = Score(s.Entities, b.Entities.Lower, b.Entities.Upper)
	out[ScoreLines] = Score(s.Lines, b.Lines.Lower, b.Lines.Upper)

	sum := 0.0
	for i := range ScoreOverall {
		sum += out[i]
	}
	out[ScoreOverall] = sum / float64(ScoreOverall)
	return out
}

// Overall returns the mean score.
func (s Scores) Overall() float64 {
	return s[ScoreOverall]
}

// ScoreName returns the label of a category index.
func ScoreName(i int) string {
	if i < 0 || i >= ScoreCount {
		return ""
	}
	return scoreNames[i]
}

// Stars rounds a score to a whole 1..5 rating.
func Stars(score float64) int {
	if math.IsNaN(score) {
		return 1
	}
	n := int(math.Round(score))
	return max(1, min(5, n))
}
