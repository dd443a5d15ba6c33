package pricing

import "github.com/shopspring/decimal"

// CalculateExpectedCash computes the cash a drawer should contain at shift
// close. Cash sales and cash refunds cover only payments whose method type is
// Cash, scoped to orders bound to the shift.
func CalculateExpectedCash(openingFloat, cashSales, payIns, payOuts, cashDrops, cashRefunds decimal.Decimal) decimal.Decimal {
	return openingFloat.
		Add(cashSales).
		Add(payIns).
		Sub(payOuts).
		Sub(cashDrops).
		Sub(cashRefunds)
}
