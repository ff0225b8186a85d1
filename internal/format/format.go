// Package format renders normalized values for display. Missing values
// always render as NotAvailable.
package format

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const NotAvailable = "Not available"

var printer = message.NewPrinter(language.English)

// Number groups thousands and keeps one decimal place only when needed.
// The sign is kept for negative values that round to a non-zero magnitude.
func Number(v float64) string {
	r := math.Round(math.Abs(v)*10) / 10
	sign := ""
	if v < 0 && r != 0 {
		sign = "-"
	}
	whole := math.Trunc(r)
	out := sign + printer.Sprintf("%d", int64(whole))
	if r == whole {
		return out
	}
	return out + "." + strconv.Itoa(int(math.Round((r-whole)*10)))
}

func Currency(v float64) string {
	return "$" + printer.Sprintf("%d", int64(math.Round(v)))
}

func CurrencyPtr(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Currency(*v)
}

func Area(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Number(*v) + " m²"
}

func PerArea(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Currency(*v) + "/m²"
}

func Count(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func Date(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.Format("2 Jan 2006")
}

func Text(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// Range labels a histogram bin.
func Range(lower, upper float64, money bool) string {
	if money {
		return Currency(lower) + " - " + Currency(upper)
	}
	return Number(lower) + " - " + Number(upper)
}
