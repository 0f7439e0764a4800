package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}

func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundRating rounds an average to one decimal place, half away from zero.
func RoundRating(avg float64) float64 {
	return decimal.NewFromFloat(avg).Round(1).InexactFloat64()
}
