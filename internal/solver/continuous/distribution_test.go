package continuous

import (
	"errors"
	"math"
	"testing"

	"npdecide/domain/core"
	"npdecide/domain/decision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistributionRejectsBadScale(t *testing.T) {
	for _, family := range []decision.Family{decision.FamilyNormal, decision.FamilyUniform, decision.FamilyExponential} {
		for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := NewDistribution(decision.DistributionSpec{Family: family, Param1: 0, Param2: scale})
			assert.Truef(t, errors.Is(err, core.ErrInvalidParameter), "%s scale=%v: got %v", family, scale, err)
		}
	}
}

func TestNewDistributionRejectsUnknownFamily(t *testing.T) {
	_, err := NewDistribution(decision.DistributionSpec{Family: "cauchy", Param1: 0, Param2: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestUniformUsesWidthConvention(t *testing.T) {
	d, err := NewDistribution(decision.DistributionSpec{Family: decision.FamilyUniform, Param1: 2, Param2: 4})
	require.NoError(t, err)

	assert.InDelta(t, 0.25, d.Density(3), 1e-12)
	assert.Zero(t, d.Density(1.9))
	assert.Zero(t, d.Density(6.1))
	assert.InDelta(t, 0.5, d.CDF(4), 1e-12)
	assert.InDelta(t, 0.25, d.Survival(5), 1e-12)
	assert.InDelta(t, 2.004, d.Quantile(0.001), 1e-12)
	assert.InDelta(t, 5.996, d.Quantile(0.999), 1e-12)
}

func TestExponentialIsShiftedByLocation(t *testing.T) {
	d, err := NewDistribution(decision.DistributionSpec{Family: decision.FamilyExponential, Param1: 1, Param2: 2})
	require.NoError(t, err)

	assert.Zero(t, d.Density(0.5))
	assert.InDelta(t, 0.5, d.Density(1), 1e-12)
	assert.InDelta(t, 1.0, d.Survival(0), 1e-12)
	assert.InDelta(t, math.Exp(-1), d.Survival(3), 1e-12)
	assert.InDelta(t, 1+2*math.Ln2, d.Quantile(0.5), 1e-12)
}

func TestNormalQuantileRoundTrip(t *testing.T) {
	d, err := NewDistribution(decision.DistributionSpec{Family: decision.FamilyNormal, Param1: -3, Param2: 0.5})
	require.NoError(t, err)

	for _, p := range []float64{0.001, 0.1, 0.5, 0.9, 0.999} {
		x := d.Quantile(p)
		assert.InDelta(t, p, d.CDF(x), 1e-9)
		assert.InDelta(t, 1-p, d.Survival(x), 1e-9)
	}
	assert.Equal(t, decision.FamilyNormal, d.Family())
}
