package app

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"testing"

	"npdecide/domain/core"
	"npdecide/domain/decision"
	"npdecide/internal"
	apperrors "npdecide/internal/errors"
	"npdecide/internal/solver/continuous"
	"npdecide/internal/solver/matrix"
	"npdecide/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *recordingMetrics) ObserveSolve(solver, outcome string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[solver+"/"+outcome]++
}

func newTestService(t *testing.T, sink *recordingMetrics, limits BatchLimits) (*DecisionService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := internal.NewLogger(internal.LogLevelDebug).WithOutput(log.New(&buf, "", 0))
	svc := NewDecisionService(
		continuous.NewSolver(continuous.DefaultConfig()),
		matrix.NewSolver(),
		sink,
		logger,
		limits,
	)
	return svc, &buf
}

func TestSolveContinuous(t *testing.T) {
	sink := &recordingMetrics{}
	svc, logs := newTestService(t, sink, BatchLimits{})

	calc, err := svc.SolveContinuous(context.Background(), ContinuousRequest{
		Alpha:    0.05,
		H0Family: "norm", H0Param1: 0, H0Param2: 1,
		H1Family: "Normal", H1Param1: 1, H1Param2: 1,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.645, calc.Result.Threshold, 0.01)
	assert.InDelta(t, 0.259, calc.Result.Power, 0.01)
	assert.Equal(t, decision.FamilyNormal, calc.Result.H1.Family)
	assert.False(t, calc.CalculationID.String() == "")
	assert.Len(t, calc.Fingerprint.String(), 64)
	assert.False(t, calc.ComputedAt.IsZero())
	assert.Equal(t, 1, sink.outcomes["continuous/ok"])
	assert.Contains(t, logs.String(), "[INFO] [DecisionService] continuous solve: threshold=1.6449 power=0.2595")
}

func TestSolveContinuous_Errors(t *testing.T) {
	sink := &recordingMetrics{}
	svc, _ := newTestService(t, sink, BatchLimits{})

	_, err := svc.SolveContinuous(context.Background(), ContinuousRequest{
		Alpha: 0.05, H0Family: "norm", H0Param2: 1, H1Family: "norm", H1Param1: 1, H1Param2: 0,
	})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Equal(t, 1, sink.outcomes["continuous/invalid_parameter"])

	_, err = svc.SolveContinuous(context.Background(), ContinuousRequest{
		Alpha: 0.05, H0Family: "gamma", H0Param2: 1, H1Family: "norm", H1Param2: 1,
	})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = svc.SolveContinuous(context.Background(), ContinuousRequest{
		Alpha: 0.0001, H0Family: "norm", H0Param2: 1, H1Family: "norm", H1Param2: 1,
	})
	assert.ErrorIs(t, err, core.ErrThresholdNotFound)
	assert.Equal(t, 1, sink.outcomes["continuous/threshold_not_found"])
}

func TestSolveStrategyMatrix(t *testing.T) {
	sink := &recordingMetrics{}
	svc, _ := newTestService(t, sink, BatchLimits{})
	req := MatrixRequest{Rows: [][]float64{{0, 4}, {5, 1}, {6, 3}, {3, 2}}, ControlledColumn: 0, LStar: 3}

	first, err := svc.SolveStrategyMatrix(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.SolveStrategyMatrix(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3.0, first.Result.Best.ValueControlled)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.CalculationID, second.CalculationID)
	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, 2, sink.outcomes["matrix/ok"])
}

func TestSolveStrategyMatrix_Errors(t *testing.T) {
	sink := &recordingMetrics{}
	svc, _ := newTestService(t, sink, BatchLimits{})

	_, err := svc.SolveStrategyMatrix(context.Background(), MatrixRequest{Rows: [][]float64{{1, 2, 3}}, LStar: 1})
	assert.ErrorIs(t, err, core.ErrMalformedMatrix)

	_, err = svc.SolveStrategyMatrix(context.Background(), MatrixRequest{Rows: nil, LStar: 1})
	assert.ErrorIs(t, err, core.ErrMalformedMatrix)

	_, err = svc.SolveStrategyMatrix(context.Background(), MatrixRequest{Rows: [][]float64{{10, 1}}, LStar: 1})
	assert.ErrorIs(t, err, core.ErrNoFeasibleStrategy)
	assert.Equal(t, 1, sink.outcomes["matrix/no_feasible_strategy"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.SolveStrategyMatrix(ctx, MatrixRequest{Rows: [][]float64{{1, 1}}, LStar: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, apperrors.CodeCanceled, apperrors.GetCode(err))
}

func TestSolveBatch(t *testing.T) {
	sink := &recordingMetrics{}
	svc, _ := newTestService(t, sink, BatchLimits{Concurrency: 3, MaxItems: 10})

	reqs := []MatrixRequest{
		{Rows: [][]float64{{0, 4}, {5, 1}}, ControlledColumn: 0, LStar: 3},
		{Rows: [][]float64{{10, 1}}, ControlledColumn: 0, LStar: 1},
		{Rows: [][]float64{{4, 0}, {1, 5}, {3, 6}, {2, 3}}, ControlledColumn: 1, LStar: 3},
		{Rows: [][]float64{{1}}, ControlledColumn: 0, LStar: 3},
	}

	outcomes, err := svc.SolveBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(reqs))

	for i, o := range outcomes {
		assert.Equal(t, i, o.Index)
	}
	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, decision.KindMixed, outcomes[0].Calculation.Result.Classification)
	assert.ErrorIs(t, outcomes[1].Err, core.ErrNoFeasibleStrategy)
	assert.Nil(t, outcomes[1].Calculation)
	require.NoError(t, outcomes[2].Err)
	assert.Equal(t, 2.0, outcomes[2].Calculation.Result.BestValueUncontrolled)
	assert.ErrorIs(t, outcomes[3].Err, core.ErrMalformedMatrix)
}

func TestSolveBatch_Limits(t *testing.T) {
	svc, _ := newTestService(t, &recordingMetrics{}, BatchLimits{Concurrency: 1, MaxItems: 2})

	_, err := svc.SolveBatch(context.Background(), nil)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	reqs := make([]MatrixRequest, 3)
	_, err = svc.SolveBatch(context.Background(), reqs)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestSolveBatch_Canceled(t *testing.T) {
	svc, _ := newTestService(t, &recordingMetrics{}, BatchLimits{Concurrency: 2, MaxItems: 8})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []MatrixRequest{
		{Rows: [][]float64{{0, 4}, {5, 1}}, LStar: 3},
		{Rows: [][]float64{{0, 4}, {5, 1}}, LStar: 3},
	}
	_, err := svc.SolveBatch(ctx, reqs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, apperrors.CodeCanceled, apperrors.GetCode(err))
}

func TestSolveBatch_MatchesSequentialSolves(t *testing.T) {
	svc, _ := newTestService(t, &recordingMetrics{}, BatchLimits{Concurrency: 4, MaxItems: 32})
	gen := testkit.NewMatrixGenerator(testkit.MatrixGeneratorConfig{Rows: 5, MaxLoss: 8, Integral: true, Seed: 11})

	reqs := make([]MatrixRequest, 24)
	for i := range reqs {
		m := gen.Matrix()
		reqs[i] = MatrixRequest{Rows: m.Rows(), ControlledColumn: i % 2, LStar: gen.FeasibleBound(m, i%2)}
	}

	outcomes, err := svc.SolveBatch(context.Background(), reqs)
	require.NoError(t, err)

	for i, req := range reqs {
		want, err := svc.SolveStrategyMatrix(context.Background(), req)
		require.NoError(t, err)
		require.NoError(t, outcomes[i].Err)
		assert.Equal(t, want.Fingerprint, outcomes[i].Calculation.Fingerprint)
		assert.Equal(t, want.Result, outcomes[i].Calculation.Result)
	}
}
