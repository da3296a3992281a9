package activity

import (
	"slices"

	"github.com/etnz/returns"
)

// merger accumulates the movements of several exports, without double counting overlaps.
type merger struct {
	kept  returns.CashMovements
	count map[string]int // occurrences kept, per movement key
}

func key(mv returns.CashMovement) string {
	return mv.Settled.String() + "|" + mv.Amount.Decimal().String() + "|" + mv.Description
}

// add merges the movements of one export and returns how many were new.
func (m *merger) add(moves returns.CashMovements) int {
	if m.count == nil {
		m.count = make(map[string]int)
	}
	seen := make(map[string]int) // occurrences in this export
	added := 0
	for _, mv := range moves {
		k := key(mv)
		seen[k]++
		if seen[k] > m.count[k] {
			m.count[k] = seen[k]
			m.kept = append(m.kept, mv)
			added++
		}
	}
	return added
}

// result returns the merged movements sorted by settlement date.
func (m *merger) result() returns.CashMovements {
	res := slices.Clone(m.kept)
	slices.SortStableFunc(res, func(a, b returns.CashMovement) int { return b.Settled.DaysUntil(a.Settled) })
	return res
}
