// Package matrix selects the constrained-optimal pure or two-point mixed
// strategy for a loss matrix. Each row is a strategy with a controlled and
// an uncontrolled loss; the controlled loss must not exceed L*, and among
// admissible strategies the uncontrolled loss is minimised.
package matrix

import (
	"fmt"

	"npdecide/domain/core"
	"npdecide/domain/decision"
	"npdecide/internal/numeric"
)

// Solver holds no state and is safe for concurrent use
type Solver struct{}

// NewSolver creates a strategy matrix solver
func NewSolver() *Solver {
	return &Solver{}
}

// Solve picks the admissible strategy with the lowest uncontrolled loss.
// controlled selects which column (0 or 1) is bounded by lStar.
func (s *Solver) Solve(m decision.StrategyMatrix, controlled int, lStar float64) (decision.StrategySolveResult, error) {
	if err := validate(m, controlled, lStar); err != nil {
		return decision.StrategySolveResult{}, err
	}

	candidates := generateCandidates(m, controlled, lStar)
	if len(candidates) == 0 {
		return decision.StrategySolveResult{}, core.NewNoFeasibleStrategyError(controlled, lStar)
	}

	sel := selectBest(candidates)
	best := collapseDegenerate(candidates[sel.best])

	return decision.StrategySolveResult{
		BestValueUncontrolled: numeric.Round4(best.ValueUncontrolled),
		BoundaryValue:         lStar,
		ControlledColumn:      controlled,
		Probabilities:         best.Probabilities,
		Classification:        best.Kind,
		Description:           describe(best, candidates, sel.equivalent),
		Best:                  best,
		Equivalent:            sel.equivalent,
		Candidates:            candidates,
		Matrix:                append(decision.StrategyMatrix(nil), m...),
		PlotData:              plotData(m, controlled, lStar, best),
	}, nil
}

func validate(m decision.StrategyMatrix, controlled int, lStar float64) error {
	if len(m) == 0 {
		return core.NewMalformedMatrixError(0, "matrix has no rows")
	}
	for i, p := range m {
		if !numeric.Finite(p.L, p.J) {
			return core.NewMalformedMatrixError(i+1, fmt.Sprintf("values must be finite numbers, got (%g, %g)", p.L, p.J))
		}
	}
	if controlled != 0 && controlled != 1 {
		return core.NewInvalidParameterError("controlled_column", fmt.Sprintf("must be 0 or 1, got %d", controlled))
	}
	if !numeric.Finite(lStar) {
		return core.NewInvalidParameterError("l_star", fmt.Sprintf("must be finite, got %g", lStar))
	}
	return nil
}

func plotData(m decision.StrategyMatrix, controlled int, lStar float64, best decision.Candidate) decision.PlotData {
	points := make([]decision.Point, len(m))
	for i, p := range m {
		points[i] = p.Point()
	}
	axis := "x"
	if controlled == 1 {
		axis = "y"
	}
	segment := []decision.Point{}
	if best.Kind == decision.KindMixed {
		segment = append(segment, best.Parents...)
	}
	return decision.PlotData{
		AllPoints:     points,
		SolutionPoint: best.Point,
		BoundaryLine:  decision.BoundaryLine{Value: lStar, Axis: axis},
		MixedSegment:  segment,
	}
}
