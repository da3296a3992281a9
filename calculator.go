package returns

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults of the calculator.
const (
	DefaultMinMonth   = "2022-01" // earliest statement period
	DefaultPostingLag = 2         // months needed for a statement to be published
)

// Calculator computes normalized returns from statement balances and cash movements.
type Calculator struct {
	Balances  BalanceSource
	Cashflows CashflowSource

	MinMonth     Month            // earliest month with balance data
	PostingLag   int              // months between now and the last available statement
	TradingDays  int              // defaults to DefaultTradingDays
	InitialGuess float64          // NewCalculator sets DefaultInitialGuess, 0 starts from 0%
	Now          func() time.Time // defaults to time.Now
	Logger       logrus.FieldLogger
}

// Result is a normalized return and the schedule it was solved from.
type Result struct {
	Start, End   Month
	StartBalance Money
	EndBalance   Money
	Schedule     Schedule
	Rate         float64 // annual rate, 0.1 is 10%
	Percent      Percent // Rate as a percentage rounded to one decimal
	Iterations   int
}

// NewCalculator returns a Calculator reading from balances and cashflows with the default settings.
func NewCalculator(balances BalanceSource, cashflows CashflowSource) *Calculator {
	return &Calculator{
		Balances:     balances,
		Cashflows:    cashflows,
		MinMonth:     MustParseMonth(DefaultMinMonth),
		PostingLag:   DefaultPostingLag,
		TradingDays:  DefaultTradingDays,
		InitialGuess: DefaultInitialGuess,
		Now:          time.Now,
	}
}

func (c *Calculator) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// LastAvailableMonth returns the most recent month whose statement is expected to be published.
func (c *Calculator) LastAvailableMonth() Month {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return MonthOf(DateOf(now())).AddMonths(-c.PostingLag)
}

// CheckRange validates [start, end] and resolves a nil end to LastAvailableMonth.
func (c *Calculator) CheckRange(start Month, end *Month) (Month, error) {
	last := c.LastAvailableMonth()
	if start.Before(c.MinMonth) {
		return Month{}, fmt.Errorf("%w: start month %s is before the first available month %s", ErrInvalidRange, start, c.MinMonth)
	}
	if end == nil {
		return last, c.checkOrder(start, last)
	}
	if end.After(last) {
		return Month{}, fmt.Errorf("%w: end month %s is after the last available month %s", ErrInvalidRange, *end, last)
	}
	return *end, c.checkOrder(start, *end)
}

func (c *Calculator) checkOrder(start, end Month) error {
	if start.After(end) {
		return fmt.Errorf("%w: start month %s is after end month %s", ErrInvalidRange, start, end)
	}
	return nil
}

// NormalizedReturn computes the annualized return between the beginning of start and the end of end.
// A nil end selects the last available month.
func (c *Calculator) NormalizedReturn(start Month, end *Month) (*Result, error) {
	last, err := c.CheckRange(start, end)
	if err != nil {
		return nil, err
	}
	log := c.logger().WithFields(logrus.Fields{"start": start.String(), "end": last.String()})

	if c.Balances == nil || c.Cashflows == nil {
		return nil, fmt.Errorf("%w: calculator needs both a balance and a cashflow source", ErrMissingData)
	}
	balances, err := c.Balances.LoadBalances()
	if err != nil {
		return nil, fmt.Errorf("loading balances: %w", err)
	}
	startBalance, err := balances.Start(start)
	if err != nil {
		return nil, err
	}
	endBalance, err := balances.End(last)
	if err != nil {
		return nil, err
	}

	window := Range{From: FirstBusinessDay(start), To: LastBusinessDay(last)}
	moves, err := c.Cashflows.LoadCashMovements()
	if err != nil {
		return nil, fmt.Errorf("loading cash movements: %w", err)
	}
	schedule := BuildSchedule(startBalance, window, moves)
	log.WithFields(logrus.Fields{
		"window":  window.String(),
		"entries": len(schedule.Entries),
		"flows":   schedule.NetFlows().String(),
	}).Debug("schedule built")

	solved, err := Solve(schedule.Entries, endBalance.AsFloat(), SolveOptions{
		TradingDays:  c.TradingDays,
		InitialGuess: &c.InitialGuess,
	})
	if err != nil {
		return nil, fmt.Errorf("solving %s to %s: %w", start, last, err)
	}
	log.WithFields(logrus.Fields{
		"rate":       solved.Rate,
		"iterations": solved.Iterations,
		"residual":   solved.Residual,
	}).Debug("rate solved")

	return &Result{
		Start:        start,
		End:          last,
		StartBalance: startBalance,
		EndBalance:   endBalance,
		Schedule:     schedule,
		Rate:         solved.Rate,
		Percent:      PercentOf(solved.Rate),
		Iterations:   solved.Iterations,
	}, nil
}
