package returns

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildSchedule(t *testing.T) {
	window := Range{From: MustParseDate("2022-02-01"), To: MustParseDate("2022-02-28")}
	moves := CashMovements{
		{Settled: MustParseDate("2022-02-28"), Amount: usd("-$200.00")}, // on the horizon
		{Settled: MustParseDate("2022-01-31"), Amount: usd("$999.00")},  // before
		{Settled: MustParseDate("2022-02-14"), Amount: usd("$500.00")},
		{Settled: MustParseDate("2022-02-01"), Amount: usd("$50.00")}, // on the opening day
		{Settled: MustParseDate("2022-03-01"), Amount: usd("$999.00")}, // after
	}

	s := BuildSchedule(usd("$1,000.00"), window, moves)

	want := []struct {
		date    string
		amount  string
		days    int
		opening bool
	}{
		{"2022-02-01", "1000", 19, true},
		{"2022-02-01", "50", 19, false},
		{"2022-02-14", "500", 10, false},
		{"2022-02-28", "-200", 0, false},
	}
	if len(s.Entries) != len(want) {
		t.Fatalf("BuildSchedule() has %d entries, want %d: %+v", len(s.Entries), len(want), s.Entries)
	}
	for i, w := range want {
		e := s.Entries[i]
		if e.Date != MustParseDate(w.date) || !e.Amount.Decimal().Equal(decimal.RequireFromString(w.amount)) || e.Days != w.days || e.Opening != w.opening {
			t.Errorf("entry %d = {%s %s %d %v}, want %+v", i, e.Date, e.Amount.Decimal(), e.Days, e.Opening, w)
		}
	}
	if got := s.NetFlows(); !got.Equal(decimal.NewFromInt(350)) {
		t.Errorf("NetFlows() = %v, want 350", got)
	}
	// the input must not be reordered.
	if moves[0].Settled != MustParseDate("2022-02-28") {
		t.Errorf("BuildSchedule() modified its input")
	}
}
