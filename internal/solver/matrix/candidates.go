package matrix

import (
	"fmt"
	"math"

	"npdecide/domain/decision"
)

const (
	// boundaryEpsilon absorbs float error when testing admissibility against L*
	boundaryEpsilon = 1e-9
	// tieEpsilon groups values that are reported as equal
	tieEpsilon = 1e-5
)

// generateCandidates enumerates every admissible strategy: first all mixtures
// of two rows that straddle L*, then every pure row not exceeding L*.
// The returned slice is freshly allocated and never mutated afterwards.
func generateCandidates(m decision.StrategyMatrix, controlled int, lStar float64) []decision.Candidate {
	uncontrolled := 1 - controlled
	candidates := make([]decision.Candidate, 0, len(m)*(len(m)+1)/2)

	for i := 0; i < len(m); i++ {
		for j := i + 1; j < len(m); j++ {
			if c, ok := mixedCandidate(m, i, j, controlled, uncontrolled, lStar); ok {
				candidates = append(candidates, c)
			}
		}
	}

	for i, p := range m {
		li := p.Column(controlled)
		if li > lStar+boundaryEpsilon {
			continue
		}
		probs := make([]float64, len(m))
		probs[i] = 1
		candidates = append(candidates, decision.Candidate{
			Kind:              decision.KindPure,
			Probabilities:     probs,
			ValueControlled:   li,
			ValueUncontrolled: p.Column(uncontrolled),
			Point:             p.Point(),
			SatisfiesBoundary: math.Abs(li-lStar) < tieEpsilon,
			Description:       fmt.Sprintf("Strategy %d", i+1),
		})
	}

	return candidates
}

// mixedCandidate solves x*Li + (1-x)*Lj = L* for the pair (i, j).
// It reports false when the pair does not straddle L* or is degenerate on
// the controlled column.
func mixedCandidate(m decision.StrategyMatrix, i, j, controlled, uncontrolled int, lStar float64) (decision.Candidate, bool) {
	li, lj := m[i].Column(controlled), m[j].Column(controlled)
	if (li-lStar)*(lj-lStar) > 0 {
		return decision.Candidate{}, false
	}
	if math.Abs(li-lj) <= boundaryEpsilon {
		return decision.Candidate{}, false
	}

	x := (lStar - lj) / (li - lj)
	if x < -boundaryEpsilon || x > 1+boundaryEpsilon {
		return decision.Candidate{}, false
	}
	x = math.Max(0, math.Min(1, x))

	ji, jj := m[i].Column(uncontrolled), m[j].Column(uncontrolled)
	probs := make([]float64, len(m))
	probs[i] = x
	probs[j] = 1 - x

	pi, pj := m[i].Point(), m[j].Point()
	return decision.Candidate{
		Kind:              decision.KindMixed,
		Probabilities:     probs,
		ValueControlled:   lStar,
		ValueUncontrolled: x*ji + (1-x)*jj,
		Point: decision.Point{
			X: x*pi.X + (1-x)*pj.X,
			Y: x*pi.Y + (1-x)*pj.Y,
		},
		Parents:           []decision.Point{pi, pj},
		SatisfiesBoundary: true,
		Description:       fmt.Sprintf("Strategy %d + Strategy %d", i+1, j+1),
	}, true
}
