package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var rupiah = accounting.Accounting{Symbol: "Rp ", Precision: 2, Thousand: ".", Decimal: ","}

func Money(amount decimal.Decimal) string {
	return rupiah.FormatMoneyDecimal(amount)
}

// WholeUnits rounds an amount to the integer gross amount Midtrans accepts.
func WholeUnits(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}
