package returns

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value, 12.5 means 12.5%.
type Percent float64

// PercentOf converts a rate (0.125) to a Percent rounded to one decimal (12.5), ties to even.
func PercentOf(rate float64) Percent {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Percent(rate)
	}
	f, _ := decimal.NewFromFloat(rate * 100).RoundBank(1).Float64()
	return Percent(f)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}
