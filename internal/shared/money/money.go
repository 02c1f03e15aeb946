package money

import "github.com/shopspring/decimal"

// Semua nilai uang dibulatkan ke 2 desimal; persentase disimpan sebagai
// pecahan desimal (0.08 = 8%).

var Zero = decimal.Zero

// Round2 rounds a monetary value to 2 fractional digits (half up).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Fraction applies a decimal-fraction rate to a base amount, rounded to 2 dp.
func Fraction(base, rate decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(rate))
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Item is a named monetary line. Lists of extra earnings or deductions are
// always Items, never a field that may be either a scalar or a list.
type Item struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type Items []Item

func (items Items) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// RequireString parses a decimal string, returning zero for empty input so
// optional sub-fields default to zero instead of failing.
func RequireString(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}
