// Package continuous computes the one-sided Neyman-Pearson threshold for a
// pair of location-scale hypotheses and the power of the resulting test.
package continuous

import (
	"fmt"
	"math"

	"npdecide/domain/core"
	"npdecide/domain/decision"
	"npdecide/internal/numeric"

	"gonum.org/v1/gonum/floats"
)

const (
	// PlotPoints is the fixed number of density samples in every result
	PlotPoints = 400

	lowerTail = 0.001
	upperTail = 0.999
)

// Config bounds the threshold search
type Config struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultConfig returns the search limits used when none are configured
func DefaultConfig() Config {
	return Config{
		MaxIterations: 100,
		Tolerance:     1e-12,
	}
}

// Solver is stateless apart from its search limits and safe for concurrent use
type Solver struct {
	cfg Config
}

// NewSolver creates a solver; non-positive limits fall back to DefaultConfig
func NewSolver(cfg Config) *Solver {
	def := DefaultConfig()
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.Tolerance <= 0 || math.IsNaN(cfg.Tolerance) {
		cfg.Tolerance = def.Tolerance
	}
	return &Solver{cfg: cfg}
}

// outcome holds unrounded solver output
type outcome struct {
	threshold  float64
	power      float64
	gamma      float64
	samples    []decision.PlotSample
	maxDensity float64
}

// Solve finds c* with P(X > c* | H0) = alpha and reports P(X > c* | H1).
// No randomization is performed at the boundary, so gamma is always 0.
func (s *Solver) Solve(spec decision.ContinuousTestSpec) (decision.ContinuousResult, error) {
	if !numeric.Finite(spec.Alpha) || spec.Alpha <= 0 || spec.Alpha >= 1 {
		return decision.ContinuousResult{}, core.NewInvalidParameterError("alpha", fmt.Sprintf("must lie in (0, 1), got %g", spec.Alpha))
	}
	h0, err := NewDistribution(spec.H0)
	if err != nil {
		return decision.ContinuousResult{}, fmt.Errorf("h0: %w", err)
	}
	h1, err := NewDistribution(spec.H1)
	if err != nil {
		return decision.ContinuousResult{}, fmt.Errorf("h1: %w", err)
	}

	out, err := s.solve(spec.Alpha, h0, h1)
	if err != nil {
		return decision.ContinuousResult{}, err
	}
	return present(spec, out), nil
}

func (s *Solver) solve(alpha float64, h0, h1 Distribution) (outcome, error) {
	lo, hi := h0.Quantile(lowerTail), h0.Quantile(upperTail)
	objective := func(c float64) float64 {
		return h0.Survival(c) - alpha
	}

	threshold, err := brent(objective, lo, hi, s.cfg.Tolerance, s.cfg.MaxIterations)
	if err != nil {
		return outcome{}, core.NewThresholdNotFoundError(fmt.Sprintf("alpha=%g over [%g, %g]: %v", alpha, lo, hi, err))
	}

	samples, maxDensity := sampleDensities(h0, h1)
	return outcome{
		threshold:  threshold,
		power:      h1.Survival(threshold),
		gamma:      0,
		samples:    samples,
		maxDensity: maxDensity,
	}, nil
}

// sampleDensities evaluates both densities on an even grid covering the
// central mass of both hypotheses.
func sampleDensities(h0, h1 Distribution) ([]decision.PlotSample, float64) {
	lo := math.Min(h0.Quantile(lowerTail), h1.Quantile(lowerTail))
	hi := math.Max(h0.Quantile(upperTail), h1.Quantile(upperTail))

	xs := floats.Span(make([]float64, PlotPoints), lo, hi)
	d0 := make([]float64, PlotPoints)
	d1 := make([]float64, PlotPoints)
	samples := make([]decision.PlotSample, PlotPoints)
	for i, x := range xs {
		d0[i] = h0.Density(x)
		d1[i] = h1.Density(x)
		samples[i] = decision.PlotSample{X: x, H0Density: d0[i], H1Density: d1[i]}
	}
	return samples, math.Max(floats.Max(d0), floats.Max(d1))
}

// present applies output rounding; plot samples stay at full precision
func present(spec decision.ContinuousTestSpec, out outcome) decision.ContinuousResult {
	return decision.ContinuousResult{
		Alpha:       spec.Alpha,
		H0:          spec.H0,
		H1:          spec.H1,
		Threshold:   numeric.Round4(out.threshold),
		Power:       numeric.Round4(out.power),
		Gamma:       numeric.Round4(out.gamma),
		PlotSamples: out.samples,
		MaxDensity:  out.maxDensity,
	}
}
