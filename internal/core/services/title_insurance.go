package services

import (
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CalculateTitleInsurance computes lender and owner policy premiums, the
// simultaneous-issue discount, endorsement fees and the closing-protection
// letter fee. When both policies are issued together, the combined subtotal
// is reduced by the discount rate and redistributed across the two premiums
// in proportion to their pre-discount share; the discount amount is recorded
// separately for display.
func CalculateTitleInsurance(deal *domain.Deal, profile domain.TitleProfile) domain.TitleInsuranceResult {
	lenderPremium := decimal.Zero
	ownerPremium := decimal.Zero
	discount := decimal.Zero

	if deal.LoanAmount.IsPositive() {
		lenderPremium = money.Percent(deal.LoanAmount, profile.LenderPolicyRate)
	}
	if deal.Selections.OwnerPolicy {
		ownerPremium = money.Percent(deal.PurchasePrice, profile.OwnerPolicyRate)
	}

	if lenderPremium.IsPositive() && ownerPremium.IsPositive() {
		subtotal := lenderPremium.Add(ownerPremium)
		discounted := subtotal.Mul(decimal.NewFromInt(1).Sub(profile.SimultaneousIssueDiscount))
		discount = subtotal.Sub(discounted)
		lenderPremium = discounted.Mul(lenderPremium).Div(subtotal)
		ownerPremium = discounted.Mul(ownerPremium).Div(subtotal)
	}

	endorsementsTotal := decimal.Zero
	for _, id := range deal.Selections.Endorsements {
		// Unknown endorsement identifiers contribute zero.
		if fee, ok := profile.Endorsements[id]; ok {
			endorsementsTotal = endorsementsTotal.Add(fee)
		}
	}

	cplFee := decimal.Zero
	if deal.Selections.CPL {
		cplFee = profile.CPLFee
	}

	return domain.TitleInsuranceResult{
		LenderPremium:        lenderPremium,
		OwnerPremium:         ownerPremium,
		SimultaneousDiscount: discount,
		EndorsementsTotal:    endorsementsTotal,
		CPLFee:               cplFee,
		Total:                lenderPremium.Add(ownerPremium).Add(endorsementsTotal).Add(cplFee),
	}
}
