package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateLineExclusiveTax(t *testing.T) {
	result := CalculateLine(dec("10"), dec("1"), decimal.Zero, dec("0.10"), false, nil)

	if !result.Net.Equal(dec("10")) {
		t.Errorf("Net = %s, want 10", result.Net)
	}
	if !result.Tax.Equal(dec("1")) {
		t.Errorf("Tax = %s, want 1", result.Tax)
	}
	if !result.Total.Equal(dec("11")) {
		t.Errorf("Total = %s, want 11", result.Total)
	}
}

func TestCalculateLineInclusiveTax(t *testing.T) {
	result := CalculateLine(dec("11"), dec("1"), decimal.Zero, dec("0.10"), true, nil)

	if !result.Net.Equal(dec("10")) {
		t.Errorf("Net = %s, want 10", result.Net)
	}
	if !result.Tax.Equal(dec("1")) {
		t.Errorf("Tax = %s, want 1", result.Tax)
	}
	if !result.Total.Equal(dec("11")) {
		t.Errorf("Total = %s, want 11", result.Total)
	}
}

// An inclusive line whose unit price equals the exclusive line's total must
// yield identical tax and total.
func TestInclusiveExclusiveRoundTrip(t *testing.T) {
	cases := []struct {
		price string
		rate  string
	}{
		{"10", "0.10"},
		{"19.99", "0.20"},
		{"3.75", "0.07"},
		{"100", "0.16"},
	}

	for _, tc := range cases {
		exclusive := CalculateLine(dec(tc.price), dec("1"), decimal.Zero, dec(tc.rate), false, nil)
		inclusive := CalculateLine(exclusive.Total, dec("1"), decimal.Zero, dec(tc.rate), true, nil)

		if !inclusive.Total.Equal(exclusive.Total) {
			t.Errorf("price %s rate %s: inclusive total %s != exclusive total %s",
				tc.price, tc.rate, inclusive.Total, exclusive.Total)
		}
	}
}

func TestCalculateLineModifierDeltasAddBeforeTax(t *testing.T) {
	result := CalculateLine(dec("4"), dec("2"), decimal.Zero, decimal.Zero, false,
		[]decimal.Decimal{dec("0.5"), dec("0.5")})

	if !result.Total.Equal(dec("10")) {
		t.Errorf("Total = %s, want 10", result.Total)
	}
}

func TestCalculateLineZeroRate(t *testing.T) {
	result := CalculateLine(dec("7.50"), dec("3"), decimal.Zero, decimal.Zero, false, nil)

	if !result.Tax.Equal(decimal.Zero) {
		t.Errorf("Tax = %s, want 0", result.Tax)
	}
	if !result.Total.Equal(dec("22.50")) {
		t.Errorf("Total = %s, want 22.50", result.Total)
	}
}

func TestCalculateLineDiscountAppliedBeforeTax(t *testing.T) {
	// (10*2 - 5) = 15 net, 10% exclusive -> 1.50 tax, 16.50 total
	result := CalculateLine(dec("10"), dec("2"), dec("5"), dec("0.10"), false, nil)

	if !result.Net.Equal(dec("15")) {
		t.Errorf("Net = %s, want 15", result.Net)
	}
	if !result.Tax.Equal(dec("1.5")) {
		t.Errorf("Tax = %s, want 1.5", result.Tax)
	}
	if !result.Total.Equal(dec("16.5")) {
		t.Errorf("Total = %s, want 16.5", result.Total)
	}
}

func TestRoundMoneyHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"-1.005", "-1.01"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
	}

	for _, tc := range cases {
		got := RoundMoney(dec(tc.in))
		if !got.Equal(dec(tc.want)) {
			t.Errorf("RoundMoney(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

// Exclusive total equals round(p*q) + round(round(p*q)*r) for positive rates.
func TestExclusiveTotalIdentity(t *testing.T) {
	cases := []struct {
		price, qty, rate string
	}{
		{"10", "1", "0.10"},
		{"3.33", "3", "0.07"},
		{"19.99", "2", "0.20"},
		{"0.99", "7", "0.16"},
	}

	for _, tc := range cases {
		p, q, r := dec(tc.price), dec(tc.qty), dec(tc.rate)
		result := CalculateLine(p, q, decimal.Zero, r, false, nil)

		net := RoundMoney(p.Mul(q))
		want := net.Add(RoundMoney(net.Mul(r)))
		if !result.Total.Equal(want) {
			t.Errorf("CalculateLine(%s,%s,0,%s) Total = %s, want %s",
				tc.price, tc.qty, tc.rate, result.Total, want)
		}
	}
}

func TestCalculateOrderTotalsSumsRoundedLines(t *testing.T) {
	lines := []LineTotals{
		{Net: dec("10.00"), Tax: dec("1.00"), Total: dec("11.00")},
		{Net: dec("4.50"), Tax: dec("0.45"), Total: dec("4.95")},
		{Net: dec("0.99"), Tax: decimal.Zero, Total: dec("0.99")},
	}

	totals := CalculateOrderTotals(lines)

	if !totals.Subtotal.Equal(dec("15.49")) {
		t.Errorf("Subtotal = %s, want 15.49", totals.Subtotal)
	}
	if !totals.TaxTotal.Equal(dec("1.45")) {
		t.Errorf("TaxTotal = %s, want 1.45", totals.TaxTotal)
	}
	if !totals.Total.Equal(dec("16.94")) {
		t.Errorf("Total = %s, want 16.94", totals.Total)
	}
}

func TestCalculateOrderTotalsEmpty(t *testing.T) {
	totals := CalculateOrderTotals(nil)

	if !totals.Subtotal.IsZero() || !totals.TaxTotal.IsZero() || !totals.Total.IsZero() {
		t.Errorf("empty order totals = %+v, want all zero", totals)
	}
}
