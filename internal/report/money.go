package report

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney renders a whole-unit amount with its currency symbol and
// thousands separators, e.g. "₹30,000". Unknown currencies get their code
// as a prefix.
func FormatMoney(amount float64, currency string) string {
	n := int64(math.Floor(amount + 0.5))
	sym, ok := currencySymbols[currency]
	if !ok && currency != "" {
		sym = currency + " "
	}
	return numberPrinter.Sprintf("%s%d", sym, n)
}
