package ports

import (
	"npdecide/domain/decision"
)

// ContinuousSolverPort computes the threshold and power of a one-sided test
type ContinuousSolverPort interface {
	Solve(spec decision.ContinuousTestSpec) (decision.ContinuousResult, error)
}

// StrategySolverPort selects the optimal strategy of a loss matrix
type StrategySolverPort interface {
	Solve(m decision.StrategyMatrix, controlledColumn int, lStar float64) (decision.StrategySolveResult, error)
}

// SolveMetrics records solver outcomes; implementations must be safe for
// concurrent use.
type SolveMetrics interface {
	ObserveSolve(solver string, outcome string, seconds float64)
}
