package decision

import (
	"fmt"
	"strings"

	"npdecide/domain/core"
)

// Family names a supported location-scale distribution family
type Family string

const (
	FamilyNormal      Family = "norm"
	FamilyUniform     Family = "uniform"
	FamilyExponential Family = "expon"
)

// ParseFamily accepts the short names used by the calculator form as well as
// the spelled-out family names.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "norm", "normal", "gaussian":
		return FamilyNormal, nil
	case "uniform", "unif":
		return FamilyUniform, nil
	case "expon", "exponential", "exp":
		return FamilyExponential, nil
	}
	return "", core.NewInvalidParameterError("family", fmt.Sprintf("%q is not one of norm, uniform, expon", s))
}

// String returns the display name of the family
func (f Family) String() string {
	switch f {
	case FamilyNormal:
		return "Normal"
	case FamilyUniform:
		return "Uniform"
	case FamilyExponential:
		return "Exponential"
	}
	return string(f)
}

// DistributionSpec describes one hypothesis distribution.
// Param1 is the location and Param2 the scale; for the uniform family the
// scale is the width of the support [Param1, Param1+Param2].
type DistributionSpec struct {
	Family Family  `json:"family" yaml:"family"`
	Param1 float64 `json:"param1" yaml:"param1"`
	Param2 float64 `json:"param2" yaml:"param2"`
}

// ContinuousTestSpec is a one-sided test of H0 against H1 at level Alpha
type ContinuousTestSpec struct {
	Alpha float64          `json:"alpha" yaml:"alpha"`
	H0    DistributionSpec `json:"h0" yaml:"h0"`
	H1    DistributionSpec `json:"h1" yaml:"h1"`
}

// PlotSample is one point of the density chart
type PlotSample struct {
	X         float64 `json:"x" yaml:"x"`
	H0Density float64 `json:"h0_density" yaml:"h0_density"`
	H1Density float64 `json:"h1_density" yaml:"h1_density"`
}

// ContinuousResult is the outcome of the continuous threshold solver.
// Threshold, Power and Gamma are rounded for presentation; PlotSamples keep
// full precision.
type ContinuousResult struct {
	Alpha       float64          `json:"alpha" yaml:"alpha"`
	H0          DistributionSpec `json:"h0" yaml:"h0"`
	H1          DistributionSpec `json:"h1" yaml:"h1"`
	Threshold   float64          `json:"threshold" yaml:"threshold"`
	Power       float64          `json:"power" yaml:"power"`
	Gamma       float64          `json:"gamma" yaml:"gamma"`
	PlotSamples []PlotSample     `json:"plot_samples" yaml:"plot_samples"`
	MaxDensity  float64          `json:"max_density" yaml:"max_density"`
}

// StrategyPoint holds the outcome of one strategy: L at column 0, J at column 1
type StrategyPoint struct {
	L float64 `json:"l" yaml:"l"`
	J float64 `json:"j" yaml:"j"`
}

// Column returns the value at positional column 0 or 1
func (p StrategyPoint) Column(idx int) float64 {
	if idx == 0 {
		return p.L
	}
	return p.J
}

// Point returns the strategy as a plot coordinate
func (p StrategyPoint) Point() Point {
	return Point{X: p.L, Y: p.J}
}

// StrategyMatrix is an ordered list of strategies; the slice index is the
// strategy identity (0-based internally, 1-based in descriptions).
type StrategyMatrix []StrategyPoint

// NewStrategyMatrix converts raw rows into a matrix, rejecting rows that do
// not carry exactly two values.
func NewStrategyMatrix(rows [][]float64) (StrategyMatrix, error) {
	if len(rows) == 0 {
		return nil, core.NewMalformedMatrixError(0, "matrix has no rows")
	}
	m := make(StrategyMatrix, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, core.NewMalformedMatrixError(i+1, fmt.Sprintf("expected 2 columns, got %d", len(row)))
		}
		m[i] = StrategyPoint{L: row[0], J: row[1]}
	}
	return m, nil
}

// Rows returns the matrix as plain [L, J] rows
func (m StrategyMatrix) Rows() [][]float64 {
	rows := make([][]float64, len(m))
	for i, p := range m {
		rows[i] = []float64{p.L, p.J}
	}
	return rows
}

// Point is a 2-D plot coordinate (x = column 0, y = column 1)
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// CandidateKind distinguishes pure from mixed strategies
type CandidateKind string

const (
	KindPure  CandidateKind = "pure"
	KindMixed CandidateKind = "mixed"
)

// Candidate is one admissible strategy considered during a matrix solve
type Candidate struct {
	Kind              CandidateKind `json:"kind" yaml:"kind"`
	Probabilities     []float64     `json:"probabilities" yaml:"probabilities"`
	ValueControlled   float64       `json:"value_controlled" yaml:"value_controlled"`
	ValueUncontrolled float64       `json:"value_uncontrolled" yaml:"value_uncontrolled"`
	Point             Point         `json:"point" yaml:"point"`
	Parents           []Point       `json:"parents,omitempty" yaml:"parents,omitempty"`
	SatisfiesBoundary bool          `json:"satisfies_boundary" yaml:"satisfies_boundary"`
	Description       string        `json:"description" yaml:"description"`
}

// BoundaryLine is the L* line drawn on the strategy chart
type BoundaryLine struct {
	Value float64 `json:"value" yaml:"value"`
	Axis  string  `json:"axis" yaml:"axis"`
}

// PlotData is everything a caller needs to chart a matrix solution
type PlotData struct {
	AllPoints     []Point      `json:"all_points" yaml:"all_points"`
	SolutionPoint Point        `json:"solution_point" yaml:"solution_point"`
	BoundaryLine  BoundaryLine `json:"boundary_line" yaml:"boundary_line"`
	MixedSegment  []Point      `json:"mixed_segment" yaml:"mixed_segment"`
}

// StrategySolveResult is the outcome of the strategy matrix solver
type StrategySolveResult struct {
	BestValueUncontrolled float64        `json:"best_value_uncontrolled" yaml:"best_value_uncontrolled"`
	BoundaryValue         float64        `json:"boundary_value" yaml:"boundary_value"`
	ControlledColumn      int            `json:"controlled_column" yaml:"controlled_column"`
	Probabilities         []float64      `json:"probabilities" yaml:"probabilities"`
	Classification        CandidateKind  `json:"classification" yaml:"classification"`
	Description           string         `json:"description" yaml:"description"`
	Best                  Candidate      `json:"best" yaml:"best"`
	Equivalent            []int          `json:"equivalent" yaml:"equivalent"`
	Candidates            []Candidate    `json:"candidates" yaml:"candidates"`
	Matrix                StrategyMatrix `json:"matrix" yaml:"matrix"`
	PlotData              PlotData       `json:"plot_data" yaml:"plot_data"`
}
