package returns

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2022-03-25 ", NewDate(2022, time.March, 25), false},
		{"2022-03-25T00:00:00", NewDate(2022, time.March, 25), false},
		{"03/25/2022", Date{}, true},
		{"invalid-date", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected Month
		err      bool
	}{
		{"2022-01", NewMonth(2022, time.January), false},
		{"2022-1", NewMonth(2022, time.January), false},
		{"202309", NewMonth(2023, time.September), false},
		{"2022-13", Month{}, true},
		{"2022-00", Month{}, true},
		{"22-01", Month{}, true},
		{"", Month{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	m := MustParseMonth("2022-12")
	if got := m.Next().String(); got != "2023-01" {
		t.Errorf("Next() = %s, want 2023-01", got)
	}
	if got := MustParseMonth("2023-02").AddMonths(-2).String(); got != "2022-12" {
		t.Errorf("AddMonths(-2) = %s, want 2022-12", got)
	}
	if got := MustParseMonth("2024-02").LastDay(); got != NewDate(2024, time.February, 29) {
		t.Errorf("LastDay() = %s, want 2024-02-29", got)
	}
	if !MustParseMonth("2022-09").Before(MustParseMonth("2022-10")) {
		t.Errorf("2022-09 should be before 2022-10")
	}
	if got := MustParseMonth("2022-11").MonthsUntil(MustParseMonth("2023-02")); got != 3 {
		t.Errorf("MonthsUntil() = %d, want 3", got)
	}
}

func TestBusinessDayBoundaries(t *testing.T) {
	tests := []struct {
		month       string
		first, last string
	}{
		{"2022-01", "2022-01-03", "2022-01-31"}, // starts on a Saturday
		{"2022-03", "2022-03-01", "2022-03-31"},
		{"2023-04", "2023-04-03", "2023-04-28"}, // starts on a Saturday, ends on a Sunday
		{"2022-12", "2022-12-01", "2022-12-30"}, // ends on a Saturday, next month rolls the year
		{"2024-02", "2024-02-01", "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			m := MustParseMonth(tt.month)
			if got := FirstBusinessDay(m); got != MustParseDate(tt.first) {
				t.Errorf("FirstBusinessDay(%s) = %s, want %s", tt.month, got, tt.first)
			}
			if got := LastBusinessDay(m); got != MustParseDate(tt.last) {
				t.Errorf("LastBusinessDay(%s) = %s, want %s", tt.month, got, tt.last)
			}
		})
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2022-01-03", "2022-01-31", 20},
		{"2022-01-07", "2022-01-10", 1}, // friday to monday
		{"2022-01-01", "2022-01-03", 0}, // saturday to monday
		{"2022-01-03", "2022-01-03", 0},
		{"2022-01-31", "2022-01-03", 0},
		{"2022-01-03", "2023-01-02", 260},
	}
	for _, tt := range tests {
		t.Run(tt.from+"_"+tt.to, func(t *testing.T) {
			if got := BusinessDaysBetween(MustParseDate(tt.from), MustParseDate(tt.to)); got != tt.want {
				t.Errorf("BusinessDaysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBusinessDaysProperties(t *testing.T) {
	base := NewDate(2022, time.January, 1)
	properties := gopter.NewProperties(nil)

	properties.Property("counting is additive over consecutive intervals", prop.ForAll(
		func(a, b, c int) bool {
			x, y, z := base.Add(a), base.Add(a+b), base.Add(a+b+c)
			return BusinessDaysBetween(x, z) == BusinessDaysBetween(x, y)+BusinessDaysBetween(y, z)
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 400),
		gen.IntRange(0, 400),
	))

	properties.Property("counting matches a day by day walk", prop.ForAll(
		func(a, n int) bool {
			from, to := base.Add(a), base.Add(a+n)
			want := 0
			for d := from; d.Before(to); d = d.Add(1) {
				if IsBusinessDay(d) {
					want++
				}
			}
			return BusinessDaysBetween(from, to) == want
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 100),
	))

	properties.Property("month boundaries are business days inside the month", prop.ForAll(
		func(offset int) bool {
			m := MonthOf(base).AddMonths(offset)
			first, last := FirstBusinessDay(m), LastBusinessDay(m)
			return IsBusinessDay(first) && IsBusinessDay(last) &&
				m.Contains(first) && m.Contains(last) &&
				BusinessDaysBetween(m.FirstDay(), first) == 0 &&
				BusinessDaysBetween(last.Add(1), m.Next().FirstDay()) == 0
		},
		gen.IntRange(-120, 240),
	))

	properties.TestingRun(t)
}
