package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrMalformedMatrix  = errors.New("malformed strategy matrix")

	// Solver errors
	ErrThresholdNotFound  = errors.New("threshold not found")
	ErrNoFeasibleStrategy = errors.New("no feasible strategy")
)

// Error constructors with context
func NewInvalidParameterError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, field, reason)
}

func NewMalformedMatrixError(row int, reason string) error {
	if row <= 0 {
		return fmt.Errorf("%w: %s", ErrMalformedMatrix, reason)
	}
	return fmt.Errorf("%w: row %d: %s", ErrMalformedMatrix, row, reason)
}

func NewThresholdNotFoundError(reason string) error {
	return fmt.Errorf("%w: %s", ErrThresholdNotFound, reason)
}

func NewNoFeasibleStrategyError(controlledColumn int, lStar float64) error {
	return fmt.Errorf("%w: no strategy satisfies L%d <= %g", ErrNoFeasibleStrategy, controlledColumn+1, lStar)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrMalformedMatrix)
}

func IsSolverError(err error) bool {
	return errors.Is(err, ErrThresholdNotFound) ||
		errors.Is(err, ErrNoFeasibleStrategy)
}
