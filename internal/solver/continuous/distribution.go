package continuous

import (
	"fmt"

	"npdecide/domain/core"
	"npdecide/domain/decision"
	"npdecide/internal/numeric"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is the closed set of location-scale families the solver
// understands. Each family has exactly one implementation below.
type Distribution interface {
	Family() decision.Family
	Density(x float64) float64
	CDF(x float64) float64
	Survival(x float64) float64
	Quantile(p float64) float64
}

// NewDistribution builds the distribution described by spec.
// Param2 must be strictly positive for every family.
func NewDistribution(spec decision.DistributionSpec) (Distribution, error) {
	if !numeric.Finite(spec.Param1, spec.Param2) {
		return nil, core.NewInvalidParameterError("param", fmt.Sprintf("values must be finite, got (%g, %g)", spec.Param1, spec.Param2))
	}
	if spec.Param2 <= 0 {
		return nil, core.NewInvalidParameterError("param2", fmt.Sprintf("scale must be > 0, got %g", spec.Param2))
	}

	switch spec.Family {
	case decision.FamilyNormal:
		return normal{d: distuv.Normal{Mu: spec.Param1, Sigma: spec.Param2}}, nil
	case decision.FamilyUniform:
		return uniform{d: distuv.Uniform{Min: spec.Param1, Max: spec.Param1 + spec.Param2}}, nil
	case decision.FamilyExponential:
		return exponential{loc: spec.Param1, d: distuv.Exponential{Rate: 1 / spec.Param2}}, nil
	}
	return nil, core.NewInvalidParameterError("family", fmt.Sprintf("unsupported family %q", spec.Family))
}

// normal is N(loc, scale)
type normal struct {
	d distuv.Normal
}

func (n normal) Family() decision.Family { return decision.FamilyNormal }
func (n normal) Density(x float64) float64 { return n.d.Prob(x) }
func (n normal) CDF(x float64) float64 { return n.d.CDF(x) }
func (n normal) Survival(x float64) float64 { return n.d.Survival(x) }
func (n normal) Quantile(p float64) float64 { return n.d.Quantile(p) }

// uniform is U(loc, loc+scale)
type uniform struct {
	d distuv.Uniform
}

func (u uniform) Family() decision.Family { return decision.FamilyUniform }
func (u uniform) Density(x float64) float64 { return u.d.Prob(x) }
func (u uniform) CDF(x float64) float64 { return u.d.CDF(x) }
func (u uniform) Survival(x float64) float64 { return u.d.Survival(x) }
func (u uniform) Quantile(p float64) float64 { return u.d.Quantile(p) }

// exponential is Exp(rate 1/scale) shifted right by loc
type exponential struct {
	loc float64
	d   distuv.Exponential
}

func (e exponential) Family() decision.Family { return decision.FamilyExponential }
func (e exponential) Density(x float64) float64 { return e.d.Prob(x - e.loc) }
func (e exponential) CDF(x float64) float64 { return e.d.CDF(x - e.loc) }
func (e exponential) Survival(x float64) float64 { return e.d.Survival(x - e.loc) }
func (e exponential) Quantile(p float64) float64 { return e.loc + e.d.Quantile(p) }
