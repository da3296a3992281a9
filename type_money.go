package returns

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a numeric value in major units.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	var v decimal.Decimal
	switch x := any(value).(type) {
	case decimal.Decimal:
		v = x
	case float64:
		v = decimal.NewFromFloat(x)
	case int:
		v = decimal.NewFromInt(int64(x))
	case int64:
		v = decimal.NewFromInt(x)
	}
	return Money{value: v, cur: strings.ToUpper(currency)}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the locale-formatted representation of the money value, e.g. "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: m.cur} }

// AsFloat returns the value as a float64. Only the solver works in floating point.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// ParseMoney parses a currency formatted string like "$1,234.56", "-$12.00" or "($12.00)"
// using the symbol and separators of the given currency.
func ParseMoney(str, currency string) (Money, error) {
	m := Money{cur: strings.ToUpper(currency)}
	cur := m.currency()
	thousand, dot := cur.Thousand, cur.Decimal
	if thousand == "" {
		thousand = ","
	}
	if dot == "" {
		dot = "."
	}

	s := strings.TrimSpace(str)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if cur.Grapheme != "" {
		s = strings.Replace(s, cur.Grapheme, "", 1)
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}
	s = strings.ReplaceAll(s, thousand, "")
	if dot != "." {
		s = strings.Replace(s, dot, ".", 1)
	}

	v, err := decimal.NewFromString(s)
	if err != nil || s == "" || strings.ContainsAny(s, "+-eE") {
		return Money{}, fmt.Errorf("%w: invalid %s amount %q", ErrParseFailure, m.cur, str)
	}
	if negative {
		v = v.Neg()
	}
	m.value = v
	return m, nil
}

// MustParseMoney is like ParseMoney but panics on error.
func MustParseMoney(str, currency string) Money {
	m, err := ParseMoney(str, currency)
	if err != nil {
		panic(err.Error())
	}
	return m
}
