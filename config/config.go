// Package config loads the nret settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/activity"
	"github.com/etnz/returns/statement"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "nret.yaml"

// Environment variables overriding the configuration file.
const (
	EnvStatements = "NRET_STATEMENTS_DIR"
	EnvActivity   = "NRET_ACTIVITY_DIR"
	EnvCurrency   = "NRET_CURRENCY"
	EnvLabel      = "NRET_LABEL"
	EnvAction     = "NRET_ACTION"
	EnvMatch      = "NRET_MATCH"
	EnvMinMonth   = "NRET_MIN_MONTH"
	EnvLag        = "NRET_LAG"
	EnvLogLevel   = "NRET_LOG_LEVEL"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Statements string `yaml:"statements"` // statement documents directory
	Activity   string `yaml:"activity"`   // activity exports directory
	Currency   string `yaml:"currency"`
	Label      string `yaml:"label"`  // label preceding the balances on a statement
	Action     string `yaml:"action"` // Action of cash movement rows
	Match      string `yaml:"match"`  // substring of the Description of cash movement rows
	MinMonth   string `yaml:"min_month"`
	Lag        int    `yaml:"lag"` // posting lag in months
	LogLevel   string `yaml:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Statements: "statements",
		Activity:   "activity",
		Currency:   returns.DefaultCurrency,
		Label:      statement.DefaultLabel,
		Action:     activity.DefaultAction,
		Match:      activity.DefaultMatch,
		MinMonth:   returns.DefaultMinMonth,
		Lag:        returns.DefaultPostingLag,
		LogLevel:   logrus.WarnLevel.String(),
	}
}

// Load returns the default configuration overridden by the YAML file at path, then by the
// environment. A missing file is not an error unless required is set.
// envFiles are loaded in the environment first (".env" when empty), without overriding it.
func Load(path string, required bool, envFiles ...string) (Config, error) {
	c := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
	case err != nil:
		return c, fmt.Errorf("reading config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return c, fmt.Errorf("parsing config %q: %w", path, err)
		}
		// relative directories are relative to the config file.
		c.Statements = relativeTo(path, c.Statements)
		c.Activity = relativeTo(path, c.Activity)
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("loading %q: %w", f, err)
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func relativeTo(configPath, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(configPath), dir)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		EnvStatements: &c.Statements,
		EnvActivity:   &c.Activity,
		EnvCurrency:   &c.Currency,
		EnvLabel:      &c.Label,
		EnvAction:     &c.Action,
		EnvMatch:      &c.Match,
		EnvMinMonth:   &c.MinMonth,
		EnvLogLevel:   &c.LogLevel,
	}
	for key, field := range str {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
	if v, ok := lookup(EnvLag); ok && v != "" {
		lag, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvLag, v, err)
		}
		c.Lag = lag
	}
	return nil
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if _, err := returns.ParseMonth(c.MinMonth); err != nil {
		errs = append(errs, fmt.Errorf("min_month: %w", err))
	}
	if c.Lag < 0 {
		errs = append(errs, fmt.Errorf("lag: must not be negative, got %d", c.Lag))
	}
	if strings.TrimSpace(c.Currency) == "" {
		errs = append(errs, errors.New("currency: is required"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, warning if it is invalid.
func (c Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return l
}

// Calculator returns a calculator reading the configured statement and activity directories.
func (c Config) Calculator(log logrus.FieldLogger) (*returns.Calculator, error) {
	minMonth, err := returns.ParseMonth(c.MinMonth)
	if err != nil {
		return nil, fmt.Errorf("min_month: %w", err)
	}
	calc := returns.NewCalculator(c.BalanceSource(log), c.CashflowSource(log))
	calc.MinMonth = minMonth
	calc.PostingLag = c.Lag
	calc.Logger = log
	return calc, nil
}

// BalanceSource returns the configured statement source.
func (c Config) BalanceSource(log logrus.FieldLogger) *statement.Source {
	return &statement.Source{Dir: c.Statements, Label: c.Label, Currency: c.Currency, Logger: log}
}

// CashflowSource returns the configured activity source.
func (c Config) CashflowSource(log logrus.FieldLogger) *activity.Source {
	return &activity.Source{Dir: c.Activity, Action: c.Action, Match: c.Match, Currency: c.Currency, Logger: log}
}
