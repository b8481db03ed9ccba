package services

import (
	"fmt"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CalculateTransferTaxes evaluates every enabled transfer-tax rule in the
// profile against the deal. A rule with an unrecognized base type or a
// missing type-specific parameter fails the whole calculation; it is never
// silently treated as zero.
func CalculateTransferTaxes(deal *domain.Deal, profile *domain.JurisdictionProfile) (domain.TransferTaxResult, error) {
	result := domain.TransferTaxResult{
		Items: []domain.TaxRuleResult{},
		Total: decimal.Zero,
	}

	for _, rule := range profile.TransferTaxes {
		if !rule.Enabled {
			continue
		}

		base, err := taxBaseAmount(deal, rule)
		if err != nil {
			return domain.TransferTaxResult{}, err
		}

		amount, err := evaluateTaxRule(rule, base)
		if err != nil {
			return domain.TransferTaxResult{}, err
		}

		result.Items = append(result.Items, domain.TaxRuleResult{
			Name:           rule.Name,
			Description:    rule.Description,
			BaseAmount:     base,
			Amount:         amount,
			PayerDefault:   rule.PayerDefault,
			SplitBuyerPct:  rule.SplitBuyerPct,
			SplitSellerPct: rule.SplitSellerPct,
		})
		result.Total = result.Total.Add(amount)
	}

	return result, nil
}

// taxBaseAmount selects the deal amount a rule is computed on. Deed taxes
// are levied on the sale price, mortgage taxes on the loan amount.
func taxBaseAmount(deal *domain.Deal, rule domain.TransferTaxRule) (decimal.Decimal, error) {
	switch rule.BaseType {
	case domain.BasePrice, domain.BaseDeed:
		return deal.PurchasePrice, nil
	case domain.BaseLoan, domain.BaseMortgage:
		return deal.LoanAmount, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: transfer tax rule %q has unrecognized base type %q",
			apperrors.ErrInvalidConfiguration, rule.Name, rule.BaseType)
	}
}

func evaluateTaxRule(rule domain.TransferTaxRule, base decimal.Decimal) (decimal.Decimal, error) {
	switch rule.CalcType {
	case domain.CalcPercent:
		if rule.Rate == nil {
			return decimal.Zero, fmt.Errorf("%w: percent rule %q has no rate",
				apperrors.ErrInvalidConfiguration, rule.Name)
		}
		return money.Percent(base, *rule.Rate), nil
	case domain.CalcFlat:
		if rule.FlatAmount == nil {
			return decimal.Zero, fmt.Errorf("%w: flat rule %q has no flat amount",
				apperrors.ErrInvalidConfiguration, rule.Name)
		}
		return *rule.FlatAmount, nil
	case domain.CalcTieredBrackets:
		if len(rule.Brackets) == 0 {
			return decimal.Zero, fmt.Errorf("%w: tiered rule %q has no brackets",
				apperrors.ErrInvalidConfiguration, rule.Name)
		}
		return bracketTax(base, rule.Brackets), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: transfer tax rule %q has unrecognized calc type %q",
			apperrors.ErrInvalidConfiguration, rule.Name, rule.CalcType)
	}
}

// bracketTax sums each bracket's rate applied to the slice of the base that
// falls into it. An unbounded bracket's effective upper bound is the base
// itself. Brackets contribute independently; the profile validator only
// admits contiguous tables starting at zero, which keeps the result
// continuous at bracket boundaries.
func bracketTax(base decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	total := decimal.Zero
	for _, bracket := range brackets {
		upper := base
		if bracket.MaxInclusive != nil && bracket.MaxInclusive.LessThan(base) {
			upper = *bracket.MaxInclusive
		}
		portion := upper.Sub(bracket.MinInclusive)
		if portion.IsPositive() {
			total = total.Add(money.Percent(portion, bracket.Rate))
		}
	}
	return total
}
