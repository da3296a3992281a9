// Package renderer renders the results of the return calculator as markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/returns"
)

//go:embed *.md
var templates embed.FS

// Options holds configuration for rendering.
type Options struct {
	// Currency is used to format every amount, whatever the currency recorded in the data.
	// Defaults to returns.DefaultCurrency.
	Currency    string
	TradingDays int // defaults to returns.DefaultTradingDays
}

func (o Options) withDefaults() Options {
	if o.Currency == "" {
		o.Currency = returns.DefaultCurrency
	}
	if o.TradingDays <= 0 {
		o.TradingDays = returns.DefaultTradingDays
	}
	return o
}

// format formats an amount in the display currency.
func (o Options) format(m returns.Money) string {
	return returns.M(m.Decimal(), o.Currency).String()
}

// RenderReturn renders a normalized return, its cashflow schedule and its balances.
func RenderReturn(r *returns.Result, opts Options) string {
	partials := map[string]string{
		"return_title":    "return_title.md",
		"return_schedule": "return_schedule.md",
		"return_balances": "return_balances.md",
	}
	return renderTemplate("return", "return.md", partials, NewReturn(r, opts))
}

// RenderBalances renders the statement balances in chronological order.
func RenderBalances(b returns.Balances, opts Options) string {
	opts = opts.withDefaults()
	type row struct{ Month, Start, End string }
	var rows []row
	for _, m := range b.Months() {
		rows = append(rows, row{m.String(), opts.format(b[m].Start), opts.format(b[m].End)})
	}
	return renderTemplate("balances", "balances.md", nil, rows)
}

// RenderCashMovements renders cash movements in their order.
func RenderCashMovements(moves returns.CashMovements, opts Options) string {
	opts = opts.withDefaults()
	type row struct{ Date, Description, Amount string }
	var rows []row
	for _, mv := range moves {
		desc := strings.ReplaceAll(mv.Description, "|", `\|`)
		rows = append(rows, row{mv.Settled.String(), desc, opts.format(mv.Amount)})
	}
	return renderTemplate("cashflows", "cashflows.md", nil, rows)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
