package matrix

import (
	"fmt"
	"math"
	"strings"

	"npdecide/domain/decision"

	"gonum.org/v1/gonum/floats"
)

const (
	// degenerateMass is the dominant probability above which a mixture is
	// reported as the pure strategy it collapses to
	degenerateMass = 0.999
	// displayMass hides negligible components from descriptions
	displayMass = 0.001
)

// selection is the result of reducing a candidate set
type selection struct {
	best       int
	equivalent []int
}

// selectBest returns the candidate with the globally minimal uncontrolled
// value, whether or not it lies on the boundary. Exact ties keep the earliest
// candidate. Every candidate within tieEpsilon of the minimum is reported as
// equivalent. candidates must be non-empty.
func selectBest(candidates []decision.Candidate) selection {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].ValueUncontrolled < candidates[best].ValueUncontrolled {
			best = i
		}
	}

	bestValue := candidates[best].ValueUncontrolled
	var equivalent []int
	for i, c := range candidates {
		if math.Abs(c.ValueUncontrolled-bestValue) < tieEpsilon {
			equivalent = append(equivalent, i)
		}
	}
	return selection{best: best, equivalent: equivalent}
}

// collapseDegenerate returns a copy of c, reclassified as pure when one
// component of a mixture carries almost all of the probability mass.
func collapseDegenerate(c decision.Candidate) decision.Candidate {
	out := c
	out.Probabilities = append([]float64(nil), c.Probabilities...)
	out.Parents = append([]decision.Point(nil), c.Parents...)
	if c.Kind == decision.KindMixed && floats.Max(c.Probabilities) > degenerateMass {
		out.Kind = decision.KindPure
		out.Parents = nil
	}
	return out
}

// describe renders the chosen strategy for display. When several pure
// strategies are equally optimal they are listed together.
func describe(best decision.Candidate, candidates []decision.Candidate, equivalent []int) string {
	if best.Kind == decision.KindPure && len(equivalent) > 1 {
		var labels []string
		seen := make(map[int]bool)
		for _, idx := range equivalent {
			c := candidates[idx]
			if c.Kind != decision.KindPure {
				continue
			}
			strategy := floats.MaxIdx(c.Probabilities)
			if seen[strategy] {
				continue
			}
			seen[strategy] = true
			labels = append(labels, fmt.Sprintf("%d", strategy+1))
		}
		switch len(labels) {
		case 0:
		case 1:
			return fmt.Sprintf("Strategy %s (100%%)", labels[0])
		default:
			return fmt.Sprintf("Strategies: %s (100%%)", strings.Join(labels, ", "))
		}
	}

	var parts []string
	for idx, p := range best.Probabilities {
		if p > displayMass {
			parts = append(parts, fmt.Sprintf("%.3f (Strategy %d)", p, idx+1))
		}
	}
	return strings.Join(parts, ", ")
}
