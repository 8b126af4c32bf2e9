package metrics

import (
	"strings"

	"github.com/shopspring/decimal"
)

const currencyPrefix = "R$\u00a0"

// FormatCurrency renders a pt-BR BRL amount, e.g. "R$ 1.234,50", with a
// non-breaking space after the symbol and half-up rounding to cents.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	fixed := rounded.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(currencyPrefix)
	b.WriteString(groupThousands(intPart))
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent renders a ratio with two decimals, e.g. "30.00%".
func FormatPercent(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// FormatRatio renders a nullable ratio, "-" when absent.
func FormatRatio(value *decimal.Decimal) string {
	if value == nil {
		return "-"
	}
	return FormatPercent(*value)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
