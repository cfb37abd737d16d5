package pie

import (
	"strconv"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	enUSOnce    sync.Once
	enUSPrinter *message.Printer
)

func printer() *message.Printer {
	enUSOnce.Do(func() {
		enUSPrinter = message.NewPrinter(language.AmericanEnglish)
	})
	return enUSPrinter
}

// FormatValue formats v the way en-US locales display numbers: thousands
// grouped with commas and at most three fraction digits, e.g. 12345.678 ->
// "12,345.678" and 1234.5 -> "1,234.5".
func FormatValue(v float64) string {
	return printer().Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatRaw formats v with the shortest representation that round-trips,
// without grouping. Tooltips show values this way.
func FormatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
