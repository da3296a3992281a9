package renderer

import (
	"strconv"

	"github.com/etnz/returns"
)

// Return is the view of a returns.Result, with every value formatted for display.
type Return struct {
	Start, End   string
	From, To     string
	Percent      string
	TradingDays  int
	Entries      []ScheduleRow
	StartBalance string
	NetFlows     string
	EndBalance   string
}

// ScheduleRow is one line of the cashflow schedule. ID 0 is the starting balance.
type ScheduleRow struct {
	ID     string
	Date   string
	Days   int
	Amount string
}

// NewReturn formats r with opts.
func NewReturn(r *returns.Result, opts Options) *Return {
	opts = opts.withDefaults()
	v := &Return{
		Start:        r.Start.String(),
		End:          r.End.String(),
		From:         r.Schedule.Window.From.String(),
		To:           r.Schedule.Window.To.String(),
		Percent:      r.Percent.String(),
		TradingDays:  opts.TradingDays,
		StartBalance: opts.format(r.StartBalance),
		NetFlows:     opts.format(returns.M(r.Schedule.NetFlows(), opts.Currency)),
		EndBalance:   opts.format(r.EndBalance),
	}
	for i, e := range r.Schedule.Entries {
		v.Entries = append(v.Entries, ScheduleRow{
			ID:     strconv.Itoa(i),
			Date:   e.Date.String(),
			Days:   e.Days,
			Amount: opts.format(e.Amount),
		})
	}
	return v
}
