// utils/money.go
package utils

import "github.com/shopspring/decimal"

// Round2 rounds an amount to cents.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// LineTotal returns round(quantity * unitPrice, 2).
func LineTotal(quantity int, unitPrice float64) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// SumRounded adds amounts as decimals and rounds the result once to cents.
// Callers that need per-line rounding must round the inputs first.
func SumRounded(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Round(2).InexactFloat64()
}

// Average returns round(total / count, 2), or 0 when count is 0.
func Average(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(count))).
		Round(2).
		InexactFloat64()
}
