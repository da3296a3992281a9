package returns

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// MonthFormat is the format used to represent a Month as a string.
const MonthFormat = "2006-01"

const Day = 24 * time.Hour

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// DaysUntil returns the number of calendar days from d to x, negative if x is before d.
func (d Date) DaysUntil(x Date) int { return int(x.time().Sub(d.time()) / Day) }

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date { return NewDate(t.Date()) }

// ParseDate parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// some exports carry a time part.
		on, err = time.Parse("2006-01-02T15:04:05", str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Month is a calendar month of a given year.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month, so that NewMonth(2022, 13) is 2023-01.
func NewMonth(year int, month time.Month) Month {
	d := NewDate(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

var monthRE = regexp.MustCompile(`^(\d{4})-?(\d{1,2})$`)

// ParseMonth parses "YYYY-MM" (or "YYYYMM") into a Month.
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)
	match := monthRE.FindStringSubmatch(str)
	if match == nil {
		return Month{}, fmt.Errorf("invalid month %q want format YYYY-MM", str)
	}
	y, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	if m < 1 || m > 12 {
		return Month{}, fmt.Errorf("invalid month %q: month number %d out of 1..12", str, m)
	}
	return Month{y, time.Month(m)}, nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Month) Year() int               { return m.y }
func (m Month) Month() time.Month       { return m.m }
func (m Month) IsZero() bool            { return m.y == 0 && m.m == 0 }
func (m Month) String() string          { return m.FirstDay().time().Format(MonthFormat) }
func (m Month) AddMonths(n int) Month   { return NewMonth(m.y, m.m+time.Month(n)) }
func (m Month) Next() Month             { return m.AddMonths(1) }
func (m Month) Before(n Month) bool     { return m.Compare(n) < 0 }
func (m Month) After(n Month) bool      { return m.Compare(n) > 0 }
func (m Month) FirstDay() Date          { return Date{m.y, m.m, 1} }
func (m Month) LastDay() Date           { return m.Next().FirstDay().Add(-1) }
func (m Month) Contains(d Date) bool    { return MonthOf(d) == m }
func (m Month) Range() Range            { return Range{From: m.FirstDay(), To: m.LastDay()} }
func (m Month) index() int              { return m.y*12 + int(m.m) - 1 }
func (m Month) Compare(n Month) int     { return m.index() - n.index() }
func (m Month) MonthsUntil(n Month) int { return n.index() - m.index() }

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// IsBusinessDay reports whether d is a Monday to Friday. There is no holiday calendar.
func IsBusinessDay(d Date) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// RollForward returns d if it is a business day, otherwise the next business day.
func (d Date) RollForward() Date {
	for !IsBusinessDay(d) {
		d = d.Add(1)
	}
	return d
}

// RollBackward returns d if it is a business day, otherwise the previous business day.
func (d Date) RollBackward() Date {
	for !IsBusinessDay(d) {
		d = d.Add(-1)
	}
	return d
}

// FirstBusinessDay returns the first business day on or after the first day of m.
func FirstBusinessDay(m Month) Date { return m.FirstDay().RollForward() }

// LastBusinessDay returns the last business day strictly before the first day of the next month.
func LastBusinessDay(m Month) Date { return m.Next().FirstDay().Add(-1).RollBackward() }

// BusinessDaysBetween counts the business days in [from, to). It is 0 when to is not after from.
func BusinessDaysBetween(from, to Date) int {
	n := from.DaysUntil(to)
	if n <= 0 {
		return 0
	}
	weeks := n / 7
	count := weeks * 5
	for d := from.Add(weeks * 7); d.Before(to); d = d.Add(1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count
}
