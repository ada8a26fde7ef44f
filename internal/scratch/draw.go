// Package scratch decides scratch-card outcomes and lays out their 3x3 grids.
// It holds no state and performs no I/O; callers persist the results.
package scratch

import (
	"math"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"raspadinha/internal/model"
)

// NormalizeProbability converts a stored probability to a fraction.
// Values above 1 are legacy percentages; non-finite or negative values count as 0.
func NormalizeProbability(p float64) float64 {
	if p > 1 {
		p /= 100
	}
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

// Eligible returns the symbols that may be awarded as a prize.
func Eligible(symbols []model.ScratchSymbol) []model.ScratchSymbol {
	return lo.Filter(symbols, func(s model.ScratchSymbol, _ int) bool {
		return NormalizeProbability(s.Probability) > 0 &&
			s.PrizeValue.GreaterThan(decimal.Zero) &&
			s.InStock()
	})
}

// TotalWinProbability is the chance of winning anything, capped at 1.
func TotalWinProbability(candidates []model.ScratchSymbol) float64 {
	return math.Min(1, sumWeights(candidates))
}

func sumWeights(candidates []model.ScratchSymbol) float64 {
	return lo.SumBy(candidates, func(s model.ScratchSymbol) float64 {
		return NormalizeProbability(s.Probability)
	})
}

// Outcome is the result of a single draw.
type Outcome struct {
	// Winner is nil when the draw lost.
	Winner         *model.ScratchSymbol
	WinProbability float64
	Roll           float64
}

// Draw rolls once against the aggregate win probability and, on a win,
// picks the prize tier in proportion to its probability.
func Draw(symbols []model.ScratchSymbol, rng RandomSource) Outcome {
	candidates := Eligible(symbols)
	out := Outcome{
		WinProbability: TotalWinProbability(candidates),
		Roll:           rng.Float64(),
	}
	if len(candidates) == 0 || out.Roll >= out.WinProbability {
		return out
	}
	winner := PickWeighted(candidates, rng)
	out.Winner = &winner
	return out
}

// PickWeighted selects one candidate with probability proportional to its
// normalized probability. candidates must not be empty.
func PickWeighted(candidates []model.ScratchSymbol, rng RandomSource) model.ScratchSymbol {
	target := rng.Float64() * sumWeights(candidates)
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += NormalizeProbability(c.Probability)
		if cumulative >= target {
			return c
		}
	}
	// float rounding can leave target just above the final sum
	return candidates[len(candidates)-1]
}
