package timecalc

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults match the locale the tracker was first built for.
const (
	DefaultLocale   = "tr-TR"
	DefaultCurrency = "EUR"
)

// CurrencyFormatter renders wage amounts for one locale and currency.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter builds a formatter from a BCP 47 locale and an ISO 4217 code.
func NewCurrencyFormatter(locale, iso string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", iso, err)
	}
	p := message.NewPrinter(tag)
	return &CurrencyFormatter{
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// Format renders amount with two decimals and the locale's separators.
func (f *CurrencyFormatter) Format(amount float64) string {
	return f.symbol + f.printer.Sprintf("%.2f", amount)
}
