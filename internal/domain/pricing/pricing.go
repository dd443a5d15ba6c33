// Package pricing contains the pure, side-effect-free money calculators used
// by the order and shift services. All arithmetic is fixed-point decimal with
// two fractional digits; every intermediate step is rounded so that results
// match currency expectations exactly.
package pricing

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits carried by monetary values.
const MoneyScale = 2

var one = decimal.NewFromInt(1)

// RoundMoney rounds a value to MoneyScale digits, half away from zero.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyScale)
}

// LineResult holds the computed amounts for one order line.
// Net is always tax-exclusive; Total always includes tax.
type LineResult struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// LineTotals is the per-line input to CalculateOrderTotals.
type LineTotals struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// OrderTotals holds the aggregated amounts for a whole order.
type OrderTotals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
}

// CalculateLine prices a single line. The effective unit price is the unit
// price plus the sum of modifier deltas; the raw line net is
// effective*qty - discount, rounded. For a tax-inclusive rate the rounded net
// is treated as tax-included and the tax is extracted from it; for an
// exclusive rate the tax is added on top.
func CalculateLine(unitPrice, qty, discount, taxRate decimal.Decimal, taxInclusive bool, modifierDeltas []decimal.Decimal) LineResult {
	effectiveUnit := unitPrice
	for _, delta := range modifierDeltas {
		effectiveUnit = effectiveUnit.Add(delta)
	}

	lineNet := RoundMoney(effectiveUnit.Mul(qty).Sub(discount))

	if taxRate.LessThanOrEqual(decimal.Zero) {
		return LineResult{Net: lineNet, Tax: decimal.Zero, Total: lineNet}
	}

	if taxInclusive {
		netOfTax := RoundMoney(lineNet.Div(one.Add(taxRate)))
		tax := RoundMoney(lineNet.Sub(netOfTax))
		return LineResult{Net: netOfTax, Tax: tax, Total: lineNet}
	}

	tax := RoundMoney(lineNet.Mul(taxRate))
	total := RoundMoney(lineNet.Add(tax))
	return LineResult{Net: lineNet, Tax: tax, Total: total}
}

// CalculateOrderTotals aggregates per-line amounts. Subtotal, tax total, and
// grand total are each the rounded sum of the respective per-line rounded
// values, not recomputed from unrounded intermediates.
func CalculateOrderTotals(lines []LineTotals) OrderTotals {
	net := decimal.Zero
	tax := decimal.Zero
	total := decimal.Zero
	for _, l := range lines {
		net = net.Add(l.Net)
		tax = tax.Add(l.Tax)
		total = total.Add(l.Total)
	}
	return OrderTotals{
		Subtotal: RoundMoney(net),
		TaxTotal: RoundMoney(tax),
		Total:    RoundMoney(total),
	}
}
