package returns

import (
	"fmt"
	"maps"
	"slices"
)

// BalanceSnapshot holds the balances printed on one periodic statement.
type BalanceSnapshot struct {
	Start, End Money
}

// Balances maps a statement period to its balances.
type Balances map[Month]BalanceSnapshot

// BalanceSource provides statement balances.
type BalanceSource interface {
	LoadBalances() (Balances, error)
}

// LoadBalances returns b itself, so that Balances can be used as an in-memory source.
func (b Balances) LoadBalances() (Balances, error) { return b, nil }

// Months returns the periods in chronological order.
func (b Balances) Months() []Month {
	return slices.SortedFunc(maps.Keys(b), func(x, y Month) int { return x.Compare(y) })
}

// Start returns the starting balance of month m.
func (b Balances) Start(m Month) (Money, error) {
	s, ok := b[m]
	if !ok {
		return Money{}, fmt.Errorf("%w: no statement balance for %s", ErrMissingData, m)
	}
	return s.Start, nil
}

// End returns the ending balance of month m.
func (b Balances) End(m Month) (Money, error) {
	s, ok := b[m]
	if !ok {
		return Money{}, fmt.Errorf("%w: no statement balance for %s", ErrMissingData, m)
	}
	return s.End, nil
}

// CashMovement is a deposit (positive) or a withdrawal (negative) recorded in the account ledger.
type CashMovement struct {
	Settled     Date
	Amount      Money
	Description string
}

// CashMovements is a list of cash movements.
type CashMovements []CashMovement

// CashflowSource provides the account cash movements since inception.
type CashflowSource interface {
	LoadCashMovements() (CashMovements, error)
}

// LoadCashMovements returns c itself, so that CashMovements can be used as an in-memory source.
func (c CashMovements) LoadCashMovements() (CashMovements, error) { return c, nil }

// Within returns the movements settled in r, keeping their order.
func (c CashMovements) Within(r Range) CashMovements {
	var res CashMovements
	for _, mv := range c {
		if r.Contains(mv.Settled) {
			res = append(res, mv)
		}
	}
	return res
}
