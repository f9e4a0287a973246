package testkit

import (
	"math"
	"math/rand"

	"npdecide/domain/decision"
)

// MatrixGeneratorConfig configures the loss matrix generator
type MatrixGeneratorConfig struct {
	Rows     int     `json:"rows"`
	MinLoss  float64 `json:"min_loss"`
	MaxLoss  float64 `json:"max_loss"`
	Integral bool    `json:"integral"` // round losses to whole numbers, which produces ties
	Seed     int64   `json:"seed"`
}

// DefaultMatrixConfig returns defaults for matrix generation
func DefaultMatrixConfig() MatrixGeneratorConfig {
	return MatrixGeneratorConfig{
		Rows:     6,
		MinLoss:  0,
		MaxLoss:  10,
		Integral: true,
		Seed:     42,
	}
}

// MatrixGenerator produces reproducible two-column loss matrices
type MatrixGenerator struct {
	config MatrixGeneratorConfig
	rng    *rand.Rand
}

// NewMatrixGenerator creates a new matrix generator
func NewMatrixGenerator(config MatrixGeneratorConfig) *MatrixGenerator {
	if config.Rows <= 0 {
		config.Rows = 1
	}
	if config.MaxLoss <= config.MinLoss {
		config.MaxLoss = config.MinLoss + 1
	}
	return &MatrixGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Matrix draws the next matrix
func (g *MatrixGenerator) Matrix() decision.StrategyMatrix {
	m := make(decision.StrategyMatrix, g.config.Rows)
	for i := range m {
		m[i] = decision.StrategyPoint{L: g.loss(), J: g.loss()}
	}
	return m
}

// Rows draws the next matrix as raw rows
func (g *MatrixGenerator) Rows() [][]float64 {
	return g.Matrix().Rows()
}

// FeasibleBound picks an L* for the controlled column that at least one
// row satisfies: a value between the smallest and largest controlled loss.
func (g *MatrixGenerator) FeasibleBound(m decision.StrategyMatrix, controlled int) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range m {
		v := p.Column(controlled)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *MatrixGenerator) loss() float64 {
	v := g.config.MinLoss + g.rng.Float64()*(g.config.MaxLoss-g.config.MinLoss)
	if g.config.Integral {
		v = math.Round(v)
	}
	return v
}

// ExampleMatrix is the four-strategy matrix used across the docs and tests.
// With L* = 3 on the first column the optimum is strategy 4 at J = 2.
func ExampleMatrix() [][]float64 {
	return [][]float64{{0, 4}, {5, 1}, {6, 3}, {3, 2}}
}
