package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a price the way it appears in comments and history
// entries: dollar sign, thousands separators, no decimal places.
func FormatCurrency(value float64) string {
	return currencyPrinter.Sprintf("$%.0f", value)
}
