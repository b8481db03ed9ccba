package money

import (
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Round rounds a monetary amount according to the given rounding mode.
// Rounding happens half away from zero, matching settlement-statement practice.
func Round(amount decimal.Decimal, mode domain.RoundingMode) decimal.Decimal {
	if mode == domain.RoundWholeDollars {
		return amount.Round(0)
	}
	return amount.Round(2)
}

// RoundCents rounds to cent precision regardless of profile settings. Used for
// final ledger amounts, which are always expressed in cents.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent converts a percentage rate (e.g. 1.5 for 1.5%) into the amount it
// yields on the given base.
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(decimal.NewFromInt(100))
}
