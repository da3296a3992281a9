package returns

import (
	"math"
)

// Defaults of the rate solver.
const (
	DefaultTradingDays   = 252 // business days in one trading year
	DefaultInitialGuess  = 0.1
	DefaultMaxIterations = 100
)

// SolveOptions configures Solve. Zero values select the defaults.
type SolveOptions struct {
	TradingDays   int
	InitialGuess  *float64 // nil selects DefaultInitialGuess, a pointer to 0 starts from 0%
	MaxIterations int
}

func (o SolveOptions) withDefaults() SolveOptions {
	if o.TradingDays <= 0 {
		o.TradingDays = DefaultTradingDays
	}
	if o.InitialGuess == nil {
		guess := DefaultInitialGuess
		o.InitialGuess = &guess
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// SolveResult is the outcome of a successful Solve.
type SolveResult struct {
	Rate       float64
	Iterations int
	Residual   float64
}

// NPV returns the value at the horizon of every entry compounded at rate:
//
//	sum(amount * (1+rate)^(days/tradingDays))
func NPV(rate float64, entries []CashflowEntry, tradingDays int) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.Amount.AsFloat() * math.Pow(1+rate, float64(e.Days)/float64(tradingDays))
	}
	return sum
}

// Solve finds the annual rate that makes the entries compound to end.
//
// It runs a Newton iteration from the initial guess, halving steps that would leave the
// domain rate > -1. There is no bracketing: a schedule whose root is not reachable from the
// guess fails with a *CalculationError instead of returning the last iterate.
func Solve(entries []CashflowEntry, end float64, opts SolveOptions) (SolveResult, error) {
	opts = opts.withDefaults()

	amounts := make([]float64, len(entries))
	exps := make([]float64, len(entries))
	scale := math.Max(1, math.Abs(end))
	elapsed := false
	for i, e := range entries {
		amounts[i] = e.Amount.AsFloat()
		exps[i] = float64(e.Days) / float64(opts.TradingDays)
		scale += math.Abs(amounts[i])
		if e.Days > 0 {
			elapsed = true
		}
	}
	ftol := 1e-9 * scale

	// f(r) and f'(r)
	eval := func(r float64) (f, df float64) {
		f = -end
		for i, a := range amounts {
			f += a * math.Pow(1+r, exps[i])
			if exps[i] != 0 {
				df += a * exps[i] * math.Pow(1+r, exps[i]-1)
			}
		}
		return f, df
	}

	if !elapsed {
		// the rate has no effect, the schedule either balances or not.
		f, _ := eval(0)
		if math.Abs(f) <= ftol {
			return SolveResult{Rate: 0, Residual: f}, nil
		}
		return SolveResult{}, &CalculationError{Reason: "no business day elapsed and balances differ", Rate: 0, Residual: f}
	}

	r := *opts.InitialGuess
	if r <= -1 {
		return SolveResult{}, &CalculationError{Reason: "initial guess out of domain", Rate: r, Residual: math.NaN()}
	}
	for i := 1; i <= opts.MaxIterations; i++ {
		f, df := eval(r)
		if !finite(f) || !finite(df) {
			return SolveResult{}, &CalculationError{Reason: "non finite value", Iterations: i, Rate: r, Residual: f}
		}
		if df == 0 {
			return SolveResult{}, &CalculationError{Reason: "zero derivative", Iterations: i, Rate: r, Residual: f}
		}
		step := f / df
		next := r - step
		for halvings := 0; next <= -1 && halvings < 64; halvings++ {
			step /= 2
			next = r - step
		}
		if next <= -1 {
			return SolveResult{}, &CalculationError{Reason: "step left the domain", Iterations: i, Rate: r, Residual: f}
		}
		if math.Abs(next-r) <= 1e-12+1.5e-8*math.Abs(next) {
			fn, _ := eval(next)
			if math.Abs(fn) <= ftol {
				return SolveResult{Rate: next, Iterations: i, Residual: fn}, nil
			}
			return SolveResult{}, &CalculationError{Reason: "stalled away from a root", Iterations: i, Rate: next, Residual: fn}
		}
		r = next
	}
	f, _ := eval(r)
	return SolveResult{}, &CalculationError{Reason: "did not converge", Iterations: opts.MaxIterations, Rate: r, Residual: f}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
