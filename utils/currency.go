package utils

import (
	"sync"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	currencyMu      sync.RWMutex
	currencyPrinter = message.NewPrinter(language.AmericanEnglish)
	currencySymbol  = "$"
)

// SetCurrency changes the locale and symbol used by FormatCurrency.
// An unparsable locale keeps the previous printer.
func SetCurrency(locale, symbol string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return err
	}
	currencyMu.Lock()
	defer currencyMu.Unlock()
	currencyPrinter = message.NewPrinter(tag)
	currencySymbol = symbol
	return nil
}

// FormatMoney renders an amount with exactly two decimals, e.g. "24.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatCurrency renders an amount for display with the configured locale's
// grouping and decimal separators, e.g. "$ 1,234.50".
func FormatCurrency(amount decimal.Decimal) string {
	currencyMu.RLock()
	defer currencyMu.RUnlock()

	fixed := amount.Round(2)
	sign := ""
	if fixed.IsNegative() {
		sign = "-"
		fixed = fixed.Abs()
	}
	units := fixed.Truncate(0)
	cents := fixed.Sub(units).Shift(2).StringFixed(0)
	if len(cents) < 2 {
		cents = "0" + cents
	}
	return currencySymbol + " " + sign + currencyPrinter.Sprintf("%d", units.IntPart()) +
		decimalSeparator(currencyPrinter) + cents
}

// decimalSeparator asks the printer how its locale separates fractions.
func decimalSeparator(p *message.Printer) string {
	for _, r := range p.Sprintf("%.1f", 1.5) {
		if !unicode.IsDigit(r) {
			return string(r)
		}
	}
	return "."
}
