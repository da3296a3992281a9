// Package activity extracts the cash movements of a brokerage account from its activity exports.
//
// An activity directory holds CSV exports with a header row. The columns Action, Description,
// SettledDate and Amount are required, in any order. A row is a cash movement when its Action
// is the transfer category ("Other" by default) and its Description contains the transfer
// marker ("ACH" by default).
//
// Exports may overlap: all the files are merged, and a movement repeated across files is only
// counted as many times as it appears in the single file that holds it the most.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/returns"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Defaults of the cash movement filter.
const (
	DefaultAction = "Other"
	DefaultMatch  = "ACH"
)

// Required columns.
const (
	ColAction      = "Action"
	ColDescription = "Description"
	ColSettledDate = "SettledDate"
	ColAmount      = "Amount"
)

// Source reads cash movements from an activity directory. It implements returns.CashflowSource.
type Source struct {
	Dir      string
	Action   string // defaults to DefaultAction
	Match    string // defaults to DefaultMatch
	Currency string // defaults to returns.DefaultCurrency
	Logger   logrus.FieldLogger
}

// Option configures Load.
type Option func(*Source)

// WithAction sets the Action value of cash movement rows.
func WithAction(action string) Option { return func(s *Source) { s.Action = action } }

// WithMatch sets the substring that Description must contain.
func WithMatch(match string) Option { return func(s *Source) { s.Match = match } }

// WithCurrency sets the currency of the amounts.
func WithCurrency(cur string) Option { return func(s *Source) { s.Currency = cur } }

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option { return func(s *Source) { s.Logger = l } }

// Load reads all the activity exports in dir.
func Load(dir string, opts ...Option) (returns.CashMovements, error) {
	s := &Source{Dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s.LoadCashMovements()
}

func (s *Source) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s *Source) filter() filter {
	f := filter{action: s.Action, match: s.Match, currency: s.Currency}
	if f.action == "" {
		f.action = DefaultAction
	}
	if f.match == "" {
		f.match = DefaultMatch
	}
	if f.currency == "" {
		f.currency = returns.DefaultCurrency
	}
	return f
}

// LoadCashMovements implements returns.CashflowSource.
func (s *Source) LoadCashMovements() (returns.CashMovements, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read activity directory %q: %v", returns.ErrMissingData, s.Dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(s.Dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no activity export (*.csv) in %q", returns.ErrMissingData, s.Dir)
	}

	f := s.filter()
	var m merger
	for _, file := range files {
		moves, err := readFile(file, f)
		if err != nil {
			return nil, err
		}
		added := m.add(moves)
		s.logger().WithFields(logrus.Fields{
			"file":  filepath.Base(file),
			"found": len(moves),
			"added": added,
		}).Debug("activity export")
	}
	return m.result(), nil
}

type filter struct {
	action, match, currency string
}

func (f filter) accept(action, description string) bool {
	return strings.TrimSpace(action) == f.action && strings.Contains(description, f.match)
}

func readFile(path string, f filter) (returns.CashMovements, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open activity export %q: %w", path, err)
	}
	defer file.Close()

	moves, err := Read(file, f.action, f.match, f.currency)
	if err != nil {
		return nil, fmt.Errorf("activity export %q: %w", filepath.Base(path), err)
	}
	return moves, nil
}

// Read decodes the cash movements of one CSV export.
func Read(r io.Reader, action, match, currency string) (returns.CashMovements, error) {
	f := filter{action: action, match: match, currency: currency}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", returns.ErrParseFailure, err)
	}
	cols, err := columns(header)
	if err != nil {
		return nil, err
	}

	var moves returns.CashMovements
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", returns.ErrParseFailure, err)
		}
		line, _ := cr.FieldPos(0)
		get := func(col string) (string, error) {
			i := cols[col]
			if i >= len(record) {
				return "", fmt.Errorf("%w: line %d has no %s column", returns.ErrParseFailure, line, col)
			}
			return strings.TrimSpace(record[i]), nil
		}

		act, err := get(ColAction)
		if err != nil {
			return nil, err
		}
		desc, err := get(ColDescription)
		if err != nil {
			return nil, err
		}
		if !f.accept(act, desc) {
			continue
		}

		settled, err := get(ColSettledDate)
		if err != nil {
			return nil, err
		}
		on, err := returns.ParseDate(settled)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", returns.ErrParseFailure, line, err)
		}
		amount, err := get(ColAmount)
		if err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid amount %q", returns.ErrParseFailure, line, amount)
		}
		moves = append(moves, returns.CashMovement{
			Settled:     on,
			Amount:      returns.M(value, f.currency),
			Description: desc,
		})
	}
	return moves, nil
}

// columns maps the required column names to their index in header.
func columns(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, col := range []string{ColAction, ColDescription, ColSettledDate, ColAmount} {
			if strings.EqualFold(h, col) {
				index[col] = i
			}
		}
	}
	for _, col := range []string{ColAction, ColDescription, ColSettledDate, ColAmount} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q in header %q", returns.ErrParseFailure, col, header)
		}
	}
	return index, nil
}
