// Package pricing formats money for display and derives discount figures.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidOriginalPrice is returned by CalculateDiscount when the original
// price is zero or negative.
var ErrInvalidOriginalPrice = errors.New("original price must be positive")

var hundred = decimal.NewFromInt(100)

// FormatPrice renders amount as US dollars rounded to two decimals, with
// thousands separators: 1234.5 -> "$1,234.50", -3 -> "-$3.00".
func FormatPrice(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// CalculateDiscount returns the percentage saved going from original to sale,
// rounded to the nearest whole percent. A sale price above the original
// yields a negative percentage.
func CalculateDiscount(original, sale decimal.Decimal) (int, error) {
	if !original.IsPositive() {
		return 0, ErrInvalidOriginalPrice
	}
	pct := original.Sub(sale).Div(original).Mul(hundred).Round(0)
	return int(pct.IntPart()), nil
}
