package report

import "github.com/shopspring/decimal"

var (
	crore    = decimal.NewFromInt(10_000_000)
	lakh     = decimal.NewFromInt(100_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatINR renders an amount in Indian short units: Cr, L and K with one
// decimal, plain integers below a thousand. Negative amounts keep their sign.
// The unit is picked after rounding, so 99,999 is "1.0 L" rather than
// "100.0 K".
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case reaches(d, lakh, 100):
		return sign + d.Div(crore).StringFixed(1) + " Cr"
	case reaches(d, thousand, 100):
		return sign + d.Div(lakh).StringFixed(1) + " L"
	case d.GreaterThanOrEqual(thousand):
		return sign + d.Div(thousand).StringFixed(1) + " K"
	}
	return sign + d.String()
}

// reaches reports whether d, shown in unit with one decimal, is at least n.
func reaches(d, unit decimal.Decimal, n int64) bool {
	return d.Div(unit).Round(1).GreaterThanOrEqual(decimal.NewFromInt(n))
}
