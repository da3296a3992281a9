package returns

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a month range falls outside the available data.
	ErrInvalidRange = errors.New("invalid range")
	// ErrMissingData is returned when a balance or a data source is missing.
	ErrMissingData = errors.New("missing data")
	// ErrParseFailure is returned when a document or a record cannot be read.
	ErrParseFailure = errors.New("parse failure")
	// ErrCalculation is returned when the rate could not be solved.
	ErrCalculation = errors.New("calculation error")
)

// CalculationError reports a solver failure together with its last state.
type CalculationError struct {
	Reason     string
	Iterations int
	Rate       float64 // last iterate
	Residual   float64 // NPV residual at Rate
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%v: %s after %d iterations (rate %g, residual %g)", ErrCalculation, e.Reason, e.Iterations, e.Rate, e.Residual)
}

func (e *CalculationError) Unwrap() error { return ErrCalculation }
