package document

import (
	"html/template"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bizdocs/pkg/models"
)

// DefaultCurrency is used when neither the record nor the caller names one.
const DefaultCurrency = "EUR"

// GermanDateLayout is the output layout of FormatDate.
const GermanDateLayout = "02.01.2006"

var (
	german = message.NewPrinter(language.German)

	dateParser = &now.Config{
		TimeLocation: time.UTC,
		TimeFormats: []string{
			"2006-01-02",
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02T15:04:05.999999999Z07:00",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"02.01.2006",
			"2.1.2006",
			"2006/01/02",
		},
	}
)

// FormatDate renders a free-form date as dd.mm.yyyy.
// Input that cannot be parsed is returned unchanged; it never fails.
func FormatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	t, err := dateParser.Parse(trimmed)
	if err != nil {
		return value
	}
	return t.Format(GermanDateLayout)
}

// FormatCurrency renders an amount in German notation with two decimals and a trailing
// currency symbol, e.g. "1.234,56 €". An empty code means DefaultCurrency; an unknown code
// is printed as given.
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	symbol := code
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = german.Sprint(currency.Symbol(unit))
	}
	rounded := decimal.NewFromFloat(amount).Round(2).InexactFloat64()
	return german.Sprintf("%.2f", rounded) + " " + symbol
}

// FormatQuantity prints a quantity without trailing zeros in German notation ("1,5", "3").
func FormatQuantity(q float64) string {
	return german.Sprintf("%v", decimal.NewFromFloat(q).Round(4).InexactFloat64())
}

// FormatPercent prints a rate as "19 %".
func FormatPercent(rate float64) string {
	return FormatQuantity(rate) + " %"
}

// FormatAddress renders the address union as lines separated by "\n".
// The string form is returned verbatim; the structured form becomes
// "{street}\n{zipCode} {city}" with the country on its own line when present.
func FormatAddress(a models.Address) string {
	if a.Raw != "" {
		return a.Raw
	}
	lines := make([]string, 0, 3)
	if s := strings.TrimSpace(a.Street); s != "" {
		lines = append(lines, s)
	}
	if s := strings.TrimSpace(strings.TrimSpace(a.ZipCode) + " " + strings.TrimSpace(a.City)); s != "" {
		lines = append(lines, s)
	}
	if s := strings.TrimSpace(a.Country); s != "" {
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}

// Markup is the single boundary for record fields that carry markup (headTextHtml, footerText).
// Trusted content is injected raw; the producer is then responsible for sanitizing it.
// Untrusted content is escaped.
func Markup(s string, trusted bool) template.HTML {
	if trusted {
		return template.HTML(s)
	}
	return template.HTML(template.HTMLEscapeString(s))
}
