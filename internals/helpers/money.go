package helper

import "github.com/shopspring/decimal"

// Currency symbol used everywhere money is rendered.
const CurrencySymbol = "GH₵"

// FormatGHS renders an amount with the cedi symbol and fixed 2 decimals.
func FormatGHS(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

// Round2 normalizes an amount to 2 decimal places (bankers' rounding not
// wanted here; plain half-up like the payment gateway reports).
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// RatePercent returns paid/due*100 rounded to 1 decimal, and 0 when due
// is zero so empty classes never divide by zero.
func RatePercent(paid, due decimal.Decimal) decimal.Decimal {
	if due.IsZero() {
		return decimal.Zero
	}
	return paid.Div(due).Mul(decimal.NewFromInt(100)).Round(1)
}
