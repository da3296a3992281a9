package returns

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func entry(amount float64, days int) CashflowEntry {
	return CashflowEntry{Amount: M(amount, "USD"), Days: days}
}

func guess(r float64) *float64 { return &r }

func TestSolve(t *testing.T) {
	tests := []struct {
		name    string
		entries []CashflowEntry
		end     float64
		want    float64
	}{
		{"no elapsed time", []CashflowEntry{entry(1000, 0)}, 1000, 0},
		{"one year at 10%", []CashflowEntry{entry(100, 252)}, 110, 0.1},
		{"one year loss", []CashflowEntry{entry(100, 252)}, 80, -0.2},
		{"two years", []CashflowEntry{entry(100, 504)}, 121, 0.1},
		{"deposit only, no growth", []CashflowEntry{entry(1000, 19), entry(500, 10)}, 1500, 0},
		{"withdrawal only, no growth", []CashflowEntry{entry(1000, 19), entry(-300, 10)}, 700, 0},
		{"january 2022", []CashflowEntry{entry(1000, 20)}, 1200, math.Pow(1.2, 252.0/20) - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Solve(tt.entries, tt.end, SolveOptions{})
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if math.Abs(got.Rate-tt.want) > 1e-7*math.Max(1, math.Abs(tt.want)) {
				t.Errorf("Solve() rate = %v, want %v", got.Rate, tt.want)
			}
			if npv := NPV(got.Rate, tt.entries, DefaultTradingDays); math.Abs(npv-tt.end) > 1e-6 {
				t.Errorf("NPV(%v) = %v, want %v", got.Rate, npv, tt.end)
			}
		})
	}
}

func TestSolveInitialGuess(t *testing.T) {
	tests := []struct {
		name  string
		guess *float64
	}{
		{"default", nil},
		{"zero", guess(0)},
		{"negative", guess(-0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Solve([]CashflowEntry{entry(100, 252)}, 110, SolveOptions{InitialGuess: tt.guess})
			if err != nil {
				t.Fatalf("Solve() error = %v", err)
			}
			if math.Abs(got.Rate-0.1) > 1e-9 {
				t.Errorf("Solve() rate = %v, want 0.1", got.Rate)
			}
		})
	}

	// from 0%, the first Newton step of a single entry over one year lands on the root.
	got, err := Solve([]CashflowEntry{entry(100, 252)}, 110, SolveOptions{InitialGuess: guess(0)})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if got.Iterations != 2 {
		t.Errorf("Solve() from 0%% iterations = %d, want 2", got.Iterations)
	}
}

func TestSolveFailures(t *testing.T) {
	tests := []struct {
		name    string
		entries []CashflowEntry
		end     float64
		opts    SolveOptions
	}{
		{"no elapsed time and balances differ", []CashflowEntry{entry(1000, 0)}, 1200, SolveOptions{}},
		{"empty schedule", nil, 100, SolveOptions{}},
		{"no positive value can be reached", []CashflowEntry{entry(-100, 252)}, 50, SolveOptions{}},
		{"iteration budget", []CashflowEntry{entry(1000, 20)}, 1200, SolveOptions{MaxIterations: 2}},
		{"initial guess out of domain", []CashflowEntry{entry(100, 252)}, 110, SolveOptions{InitialGuess: guess(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.entries, tt.end, tt.opts)
			if !errors.Is(err, ErrCalculation) {
				t.Fatalf("Solve() error = %v, want ErrCalculation", err)
			}
			var cerr *CalculationError
			if !errors.As(err, &cerr) {
				t.Fatalf("Solve() error = %T, want *CalculationError", err)
			}
		})
	}
}

func TestSolveRecoversRate(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a single compounded amount gives back its rate", prop.ForAll(
		func(rate, amount float64, days int) bool {
			entries := []CashflowEntry{entry(amount, days)}
			end := NPV(rate, entries, DefaultTradingDays)
			got, err := Solve(entries, end, SolveOptions{})
			return err == nil && math.Abs(got.Rate-rate) < 1e-6
		},
		gen.Float64Range(-0.5, 1.0),
		gen.Float64Range(100, 1e6),
		gen.IntRange(20, 1500),
	))

	properties.Property("regular deposits do not change a known rate", prop.ForAll(
		func(rate, deposit float64) bool {
			entries := []CashflowEntry{entry(10000, 252)}
			for days := 231; days > 0; days -= 21 {
				entries = append(entries, entry(deposit, days))
			}
			end := NPV(rate, entries, DefaultTradingDays)
			got, err := Solve(entries, end, SolveOptions{})
			return err == nil && math.Abs(got.Rate-rate) < 1e-6
		},
		gen.Float64Range(-0.3, 0.6),
		gen.Float64Range(0, 2000),
	))

	properties.TestingRun(t)
}
