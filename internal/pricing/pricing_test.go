package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"49", "$49.00"},
		{"9.99", "$9.99"},
		{"24.5", "$24.50"},
		{"19.999", "$20.00"},
		{"0.005", "$0.01"},
		{"999.994", "$999.99"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"-3", "-$3.00"},
		{"-0.001", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		sale     int64
		want     int
	}{
		{"premium ui kit", 69, 49, 29},
		{"developer toolkit", 99, 79, 20},
		{"seo course", 199, 129, 35},
		{"theme bundle", 89, 59, 34},
		{"logo templates", 49, 29, 41},
		{"no discount", 50, 50, 0},
		{"free", 10, 0, 100},
		{"markup", 100, 120, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateDiscount(decimal.NewFromInt(tt.original), decimal.NewFromInt(tt.sale))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateDiscount_NonPositiveOriginal(t *testing.T) {
	for _, orig := range []int64{0, -1} {
		_, err := CalculateDiscount(decimal.NewFromInt(orig), decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidOriginalPrice)
	}
}
