package catering

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// shekel is the currency symbol for all monetary amounts. The API reports
// amounts in ILS.
const shekel = "₪"

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats an integer with thousand separators.
// Example: FormatCount(18248) returns "18,248".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney formats a monetary amount with the currency symbol, two
// decimals, and thousand separators. Example: FormatMoney(90614.5)
// returns "₪90,614.50".
func FormatMoney(amount float64) string {
	return shekel + formatFloat(amount, 2)
}

// FormatQuantity formats a quantity with thousand separators and no
// decimals; supplier quantities are reported as whole units.
func FormatQuantity(qty float64) string {
	return formatFloat(qty, 0)
}

// FormatUnitPrice formats a per-unit price with two decimals.
func FormatUnitPrice(price float64) string {
	return shekel + formatFloat(price, 2)
}

// FormatPercent formats a percentage with one decimal.
// Example: FormatPercent(87.26) returns "87.3%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// formatFloat formats a float with the given precision and thousand
// separators in the integer part.
func formatFloat(f float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	if precision == 0 {
		return FormatCount(int64(rounded))
	}

	formatted := fmt.Sprintf(fmt.Sprintf("%%.%df", precision), rounded)
	intPart, decPart := splitDecimal(formatted)
	if decPart == "" {
		return formatted
	}
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	return printer.Sprintf("%d", n) + "." + decPart
}

// splitDecimal splits a formatted number into integer and decimal parts.
func splitDecimal(s string) (string, string) {
	for i, c := range s {
		if c == '.' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
