// Package statement extracts the monthly starting and ending balances from brokerage statements.
//
// A statement directory holds one document per period. The period is read from the 6-digit
// YYYYMM token of the file name (e.g. "202309.pdf" or "statement-202309.txt"). On the first
// page, the balances are the two amounts printed right after a label, "Total Equity Holdings"
// by default.
//
// PDF documents are read with github.com/ledongthuc/pdf; ".txt" documents hold the first page
// text already extracted.
package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/returns"
	"github.com/sirupsen/logrus"
)

// DefaultLabel precedes the starting and ending balances on the statement first page.
const DefaultLabel = "Total Equity Holdings"

// Source reads balances from a statement directory. It implements returns.BalanceSource.
type Source struct {
	Dir      string
	Label    string // defaults to DefaultLabel
	Currency string // defaults to returns.DefaultCurrency
	Logger   logrus.FieldLogger
}

// Option configures Load.
type Option func(*Source)

// WithLabel changes the label searched on the first page.
func WithLabel(label string) Option { return func(s *Source) { s.Label = label } }

// WithCurrency sets the currency of the amounts.
func WithCurrency(cur string) Option { return func(s *Source) { s.Currency = cur } }

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option { return func(s *Source) { s.Logger = l } }

// Load reads all the statements in dir.
func Load(dir string, opts ...Option) (returns.Balances, error) {
	s := &Source{Dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s.LoadBalances()
}

func (s *Source) label() string {
	if s.Label == "" {
		return DefaultLabel
	}
	return s.Label
}

func (s *Source) currency() string {
	if s.Currency == "" {
		return returns.DefaultCurrency
	}
	return s.Currency
}

func (s *Source) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

// LoadBalances implements returns.BalanceSource.
func (s *Source) LoadBalances() (returns.Balances, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read statement directory %q: %v", returns.ErrMissingData, s.Dir, err)
	}

	balances := make(returns.Balances)
	origin := make(map[returns.Month]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		log := s.logger().WithField("file", name)

		read, ok := readers[strings.ToLower(filepath.Ext(name))]
		if !ok {
			log.Debug("ignoring unsupported statement document")
			continue
		}
		period, ok := PeriodOf(name)
		if !ok {
			log.Warn("ignoring statement without a YYYYMM period in its name")
			continue
		}
		if prev, dup := origin[period]; dup {
			return nil, fmt.Errorf("%w: statements %q and %q are both for %s", returns.ErrParseFailure, prev, name, period)
		}

		text, err := read(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read statement %q: %v", returns.ErrParseFailure, name, err)
		}
		snapshot, err := ParseBalances(text, s.label(), s.currency())
		if err != nil {
			return nil, fmt.Errorf("statement %q: %w", name, err)
		}
		log.WithFields(logrus.Fields{
			"period": period.String(),
			"start":  snapshot.Start.String(),
			"end":    snapshot.End.String(),
		}).Debug("statement balances")

		balances[period] = snapshot
		origin[period] = name
	}
	return balances, nil
}

var periodRE = regexp.MustCompile(`(?:^|\D)(\d{4})(\d{2})(?:\D|$)`)

// PeriodOf returns the period encoded in a statement file name.
func PeriodOf(filename string) (returns.Month, bool) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	match := periodRE.FindStringSubmatch(base)
	if match == nil {
		return returns.Month{}, false
	}
	y, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	if m < 1 || m > 12 {
		return returns.Month{}, false
	}
	return returns.NewMonth(y, time.Month(m)), true
}

// ParseBalances finds label in text and parses the two amounts that follow it.
func ParseBalances(text, label, currency string) (returns.BalanceSnapshot, error) {
	i := strings.Index(text, label)
	if i < 0 {
		return returns.BalanceSnapshot{}, fmt.Errorf("%w: label %q not found", returns.ErrParseFailure, label)
	}
	tokens := strings.Fields(text[i+len(label):])
	if len(tokens) < 2 {
		return returns.BalanceSnapshot{}, fmt.Errorf("%w: expected two amounts after %q, got %q", returns.ErrParseFailure, label, tokens)
	}
	start, err := returns.ParseMoney(tokens[0], currency)
	if err != nil {
		return returns.BalanceSnapshot{}, fmt.Errorf("starting balance after %q: %w", label, err)
	}
	end, err := returns.ParseMoney(tokens[1], currency)
	if err != nil {
		return returns.BalanceSnapshot{}, fmt.Errorf("ending balance after %q: %w", label, err)
	}
	return returns.BalanceSnapshot{Start: start, End: end}, nil
}
