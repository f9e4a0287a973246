package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"npdecide/domain/core"
	"npdecide/domain/decision"
	"npdecide/internal"
	"npdecide/internal/errors"
	"npdecide/internal/metrics"
	"npdecide/ports"

	"golang.org/x/sync/errgroup"
)

const (
	solverContinuous = "continuous"
	solverMatrix     = "matrix"
)

// DecisionService validates raw caller input, runs the solvers and wraps each
// result with an id, an input fingerprint and timing.
type DecisionService struct {
	continuous ports.ContinuousSolverPort
	strategy   ports.StrategySolverPort
	metrics    ports.SolveMetrics
	logger     *internal.Logger

	batchConcurrency int
	batchMaxItems    int
}

// BatchLimits bounds SolveBatch
type BatchLimits struct {
	Concurrency int
	MaxItems    int
}

// ContinuousRequest is the raw continuous-mode input as received from a caller
type ContinuousRequest struct {
	Alpha    float64
	H0Family string
	H0Param1 float64
	H0Param2 float64
	H1Family string
	H1Param1 float64
	H1Param2 float64
}

// MatrixRequest is the raw loss-matrix input as received from a caller
type MatrixRequest struct {
	Rows             [][]float64
	ControlledColumn int
	LStar            float64
}

// ContinuousCalculation is a continuous result plus bookkeeping
type ContinuousCalculation struct {
	CalculationID core.CalculationID        `json:"calculation_id" yaml:"calculation_id"`
	Fingerprint   core.InputFingerprint     `json:"fingerprint" yaml:"fingerprint"`
	ComputedAt    core.Timestamp            `json:"computed_at" yaml:"computed_at"`
	ElapsedMs     float64                   `json:"elapsed_ms" yaml:"elapsed_ms"`
	Result        decision.ContinuousResult `json:"result" yaml:"result"`
}

// MatrixCalculation is a strategy matrix result plus bookkeeping
type MatrixCalculation struct {
	CalculationID core.CalculationID           `json:"calculation_id" yaml:"calculation_id"`
	Fingerprint   core.InputFingerprint        `json:"fingerprint" yaml:"fingerprint"`
	ComputedAt    core.Timestamp               `json:"computed_at" yaml:"computed_at"`
	ElapsedMs     float64                      `json:"elapsed_ms" yaml:"elapsed_ms"`
	Result        decision.StrategySolveResult `json:"result" yaml:"result"`
}

// BatchOutcome is the result of one batch item; exactly one of Calculation
// and Err is set.
type BatchOutcome struct {
	Index       int
	Calculation *MatrixCalculation
	Err         error
}

// NewDecisionService creates a decision service. A nil metrics sink discards
// observations and a nil logger falls back to internal.DefaultLogger.
func NewDecisionService(
	continuous ports.ContinuousSolverPort,
	strategy ports.StrategySolverPort,
	sink ports.SolveMetrics,
	logger *internal.Logger,
	limits BatchLimits,
) *DecisionService {
	if sink == nil {
		sink = metrics.Nop{}
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if limits.Concurrency <= 0 {
		limits.Concurrency = 4
	}
	if limits.MaxItems <= 0 {
		limits.MaxItems = 64
	}
	return &DecisionService{
		continuous:       continuous,
		strategy:         strategy,
		metrics:          sink,
		logger:           logger.WithComponent("DecisionService"),
		batchConcurrency: limits.Concurrency,
		batchMaxItems:    limits.MaxItems,
	}
}

// SolveContinuous parses the family names and runs the threshold solver
func (s *DecisionService) SolveContinuous(ctx context.Context, req ContinuousRequest) (*ContinuousCalculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithCode(errors.CodeCanceled, err)
	}

	h0Family, err := decision.ParseFamily(req.H0Family)
	if err != nil {
		return nil, fmt.Errorf("h0: %w", err)
	}
	h1Family, err := decision.ParseFamily(req.H1Family)
	if err != nil {
		return nil, fmt.Errorf("h1: %w", err)
	}
	spec := decision.ContinuousTestSpec{
		Alpha: req.Alpha,
		H0:    decision.DistributionSpec{Family: h0Family, Param1: req.H0Param1, Param2: req.H0Param2},
		H1:    decision.DistributionSpec{Family: h1Family, Param1: req.H1Param1, Param2: req.H1Param2},
	}

	start := time.Now()
	result, err := s.continuous.Solve(spec)
	elapsed := core.Since(start)
	s.observe(solverContinuous, err, elapsed)
	if err != nil {
		s.logger.Warn("continuous solve rejected (alpha=%g, h0=%s, h1=%s): %v", spec.Alpha, h0Family, h1Family, err)
		return nil, err
	}

	s.logger.Info("continuous solve: threshold=%.4f power=%.4f (%.2fms)", result.Threshold, result.Power, elapsed.Milliseconds())
	return &ContinuousCalculation{
		CalculationID: core.NewCalculationID(),
		Fingerprint: core.ComputeInputFingerprint(solverContinuous,
			[]string{string(h0Family), string(h1Family)},
			[]float64{req.Alpha, req.H0Param1, req.H0Param2, req.H1Param1, req.H1Param2},
			nil),
		ComputedAt: core.Now(),
		ElapsedMs:  elapsed.Milliseconds(),
		Result:     result,
	}, nil
}

// SolveStrategyMatrix converts raw rows into a matrix and runs the strategy solver
func (s *DecisionService) SolveStrategyMatrix(ctx context.Context, req MatrixRequest) (*MatrixCalculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithCode(errors.CodeCanceled, err)
	}

	m, err := decision.NewStrategyMatrix(req.Rows)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.strategy.Solve(m, req.ControlledColumn, req.LStar)
	elapsed := core.Since(start)
	s.observe(solverMatrix, err, elapsed)
	if err != nil {
		s.logger.Warn("matrix solve rejected (%d rows, column=%d, L*=%g): %v", len(m), req.ControlledColumn, req.LStar, err)
		return nil, err
	}

	s.logger.Info("matrix solve: %d rows, %d candidates, best=%.4f [%s] (%.2fms)",
		len(m), len(result.Candidates), result.BestValueUncontrolled, result.Description, elapsed.Milliseconds())
	return &MatrixCalculation{
		CalculationID: core.NewCalculationID(),
		Fingerprint: core.ComputeInputFingerprint(solverMatrix,
			[]string{fmt.Sprintf("c%d", req.ControlledColumn)},
			[]float64{req.LStar},
			req.Rows),
		ComputedAt: core.Now(),
		ElapsedMs:  elapsed.Milliseconds(),
		Result:     result,
	}, nil
}

// SolveBatch solves independent matrix problems concurrently. Per-item
// failures are reported in the matching outcome; only cancellation of ctx
// fails the batch as a whole.
func (s *DecisionService) SolveBatch(ctx context.Context, reqs []MatrixRequest) ([]BatchOutcome, error) {
	if len(reqs) == 0 {
		return nil, errors.InvalidInput("batch has no items")
	}
	if len(reqs) > s.batchMaxItems {
		return nil, errors.InvalidInput(fmt.Sprintf("batch has %d items, limit is %d", len(reqs), s.batchMaxItems))
	}

	outcomes := make([]BatchOutcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			calc, err := s.SolveStrategyMatrix(gctx, req)
			outcomes[i] = BatchOutcome{Index: i, Calculation: calc, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeCanceled, err), "batch aborted")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeCanceled, err), "batch aborted")
	}

	s.logger.Debug("batch of %d matrix problems finished", len(reqs))
	return outcomes, nil
}

func (s *DecisionService) observe(solver string, err error, elapsed core.Elapsed) {
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(errors.GetCode(err))
	}
	s.metrics.ObserveSolve(solver, outcome, time.Duration(elapsed).Seconds())
}
