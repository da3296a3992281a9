package returns

import (
	"slices"

	"github.com/shopspring/decimal"
)

// CashflowEntry is one amount of the cashflow schedule and its business-day distance to the horizon.
type CashflowEntry struct {
	Date    Date
	Amount  Money
	Days    int  // business days in [Date, horizon)
	Opening bool // true for the synthetic starting balance entry
}

// Schedule is the cashflow schedule of a return calculation.
type Schedule struct {
	Window  Range
	Entries []CashflowEntry
}

// BuildSchedule creates the schedule for window: the opening balance anchored on window.From
// followed by every movement settled within the window, in date order.
func BuildSchedule(opening Money, window Range, moves CashMovements) Schedule {
	in := moves.Within(window)
	slices.SortStableFunc(in, func(a, b CashMovement) int { return b.Settled.DaysUntil(a.Settled) })

	entries := make([]CashflowEntry, 0, len(in)+1)
	entries = append(entries, CashflowEntry{
		Date:    window.From,
		Amount:  opening,
		Days:    BusinessDaysBetween(window.From, window.To),
		Opening: true,
	})
	for _, mv := range in {
		entries = append(entries, CashflowEntry{
			Date:   mv.Settled,
			Amount: mv.Amount,
			Days:   BusinessDaysBetween(mv.Settled, window.To),
		})
	}
	return Schedule{Window: window, Entries: entries}
}

// NetFlows returns the sum of the movements, excluding the opening balance.
func (s Schedule) NetFlows() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.Entries {
		if !e.Opening {
			sum = sum.Add(e.Amount.Decimal())
		}
	}
	return sum
}
