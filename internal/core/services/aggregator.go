package services

import (
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/utils/money"
	"github.com/shopspring/decimal"
)

// MergeSettlementFees applies the deal's flat-fee overrides on top of the
// profile's settlement fee schedule, key by key. Nil overrides keep the
// profile value.
func MergeSettlementFees(base domain.SettlementFeesProfile, overrides *domain.FlatFeeOverrides) domain.SettlementFeesProfile {
	if overrides == nil {
		return base
	}
	merged := base
	if overrides.SettlementFee != nil {
		merged.SettlementFee = *overrides.SettlementFee
	}
	if overrides.AttorneyFee != nil {
		merged.AttorneyFee = *overrides.AttorneyFee
	}
	if overrides.Notary != nil {
		merged.Notary = *overrides.Notary
	}
	if overrides.Wire != nil {
		merged.Wire = *overrides.Wire
	}
	if overrides.Courier != nil {
		merged.Courier = *overrides.Courier
	}
	if overrides.PayoffStatementFee != nil {
		merged.PayoffStatementFee = *overrides.PayoffStatementFee
	}
	return merged
}

// ledgerBuilder accumulates line items into the per-side debit/credit
// collections while preserving category insertion order for grouping.
type ledgerBuilder struct {
	buyer         domain.SideStatement
	seller        domain.SideStatement
	categoryOrder []domain.Category
	byCategory    map[domain.Category][]domain.LineItem
}

func newLedgerBuilder() *ledgerBuilder {
	return &ledgerBuilder{
		buyer:      emptySideStatement(),
		seller:     emptySideStatement(),
		byCategory: map[domain.Category][]domain.LineItem{},
	}
}

func emptySideStatement() domain.SideStatement {
	return domain.SideStatement{
		Debits:       []domain.LineItem{},
		Credits:      []domain.LineItem{},
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		Net:          decimal.Zero,
	}
}

// add appends a ledger entry. Amounts are rounded to cents here and nowhere
// earlier; zero and negative amounts are dropped.
func (b *ledgerBuilder) add(side domain.Side, entry domain.EntryType, category domain.Category, description string, amount decimal.Decimal) {
	rounded := money.RoundCents(amount)
	if !rounded.IsPositive() {
		return
	}

	item := domain.LineItem{
		Description: description,
		Category:    category,
		Amount:      rounded,
		Side:        side,
		EntryType:   entry,
	}

	statement := &b.buyer
	if side == domain.Seller {
		statement = &b.seller
	}
	if entry == domain.Debit {
		statement.Debits = append(statement.Debits, item)
		statement.TotalDebits = statement.TotalDebits.Add(rounded)
	} else {
		statement.Credits = append(statement.Credits, item)
		statement.TotalCredits = statement.TotalCredits.Add(rounded)
	}

	if _, seen := b.byCategory[category]; !seen {
		b.categoryOrder = append(b.categoryOrder, category)
	}
	b.byCategory[category] = append(b.byCategory[category], item)
}

func (b *ledgerBuilder) build() *domain.ClosingCostResult {
	b.buyer.Net = b.buyer.TotalDebits.Sub(b.buyer.TotalCredits)
	b.seller.Net = b.seller.TotalDebits.Sub(b.seller.TotalCredits)

	groups := make([]domain.CategoryGroup, 0, len(b.categoryOrder))
	for _, category := range b.categoryOrder {
		items := b.byCategory[category]
		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.SignedAmount())
		}
		groups = append(groups, domain.CategoryGroup{
			Category: category,
			Items:    items,
			Subtotal: subtotal,
		})
	}

	return &domain.ClosingCostResult{
		Buyer:               b.buyer,
		Seller:              b.seller,
		LineItemsByCategory: groups,
	}
}

// BuildSettlementStatement merges the four calculator outputs and the
// override-merged flat-fee schedule into per-side debit/credit collections,
// totals, nets and category groups. This is the only place where allocation
// between buyer and seller is finalized into ledger entries.
func BuildSettlementStatement(
	tax domain.TransferTaxResult,
	recording domain.RecordingFeesResult,
	title domain.TitleInsuranceResult,
	prorations domain.ProrationResult,
	fees domain.SettlementFeesProfile,
	selections domain.BuyerSelections,
) *domain.ClosingCostResult {
	b := newLedgerBuilder()

	for _, item := range tax.Items {
		buyerDebit, sellerDebit := allocateTax(item)
		b.add(domain.Buyer, domain.Debit, domain.CategoryTransferTaxes, item.Name, buyerDebit)
		b.add(domain.Seller, domain.Debit, domain.CategoryTransferTaxes, item.Name, sellerDebit)
	}

	// Recording fees are buyer debits by convention; no configuration can
	// reroute this allocation.
	b.add(domain.Buyer, domain.Debit, domain.CategoryRecordingFees, "Deed Recording", recording.DeedFee)
	b.add(domain.Buyer, domain.Debit, domain.CategoryRecordingFees, "Mortgage Recording", recording.MortgageFee)
	b.add(domain.Buyer, domain.Debit, domain.CategoryRecordingFees, "Ancillary Recording", recording.AncillaryFees)

	b.add(domain.Buyer, domain.Debit, domain.CategoryTitleInsurance, "Lender Title Policy", title.LenderPremium)
	if selections.OwnerPolicyPaidByBuyer {
		b.add(domain.Buyer, domain.Debit, domain.CategoryTitleInsurance, "Owner Title Policy", title.OwnerPremium)
	} else {
		b.add(domain.Seller, domain.Credit, domain.CategoryTitleInsurance, "Owner Title Policy", title.OwnerPremium)
	}
	b.add(domain.Buyer, domain.Debit, domain.CategoryTitleInsurance, "Title Endorsements", title.EndorsementsTotal)
	b.add(domain.Buyer, domain.Debit, domain.CategoryTitleInsurance, "CPL (Closing Protection Letter)", title.CPLFee)

	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Settlement Fee", fees.SettlementFee)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Attorney Fees", fees.AttorneyFee)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Notary", fees.Notary)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Wire Fee", fees.Wire)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Courier", fees.Courier)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Payoff Statement Fee", fees.PayoffStatementFee)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Title Search", fees.TitleSearch)
	b.add(domain.Buyer, domain.Debit, domain.CategorySettlementFees, "Title Examination", fees.TitleExamination)

	for _, line := range prorations.Lines {
		if line.BuyerIsDebited {
			// Seller paid the bill in advance: the buyer reimburses the
			// seller's post-closing share; the seller is credited the
			// buyer's pre-closing share.
			b.add(domain.Buyer, domain.Debit, domain.CategoryProrations, line.Description, line.SellerShare)
			b.add(domain.Seller, domain.Credit, domain.CategoryProrations, line.Description, line.BuyerShare)
		}
		if line.SellerIsDebited {
			// Bill payable after closing: the seller is debited their own
			// share, handed to the buyer who will pay the full bill later.
			b.add(domain.Seller, domain.Debit, domain.CategoryProrations, line.Description, line.SellerShare)
			b.add(domain.Buyer, domain.Credit, domain.CategoryProrations, line.Description, line.SellerShare)
		}
	}

	return b.build()
}

// allocateTax splits a computed tax amount between the sides per the rule's
// default payer. Split rules with missing percentages fall back to a full
// buyer debit; profile validation rejects them before they get this far.
func allocateTax(item domain.TaxRuleResult) (buyerDebit, sellerDebit decimal.Decimal) {
	switch item.PayerDefault {
	case domain.PayerSeller:
		return decimal.Zero, item.Amount
	case domain.PayerSplit:
		if item.SplitBuyerPct != nil && item.SplitSellerPct != nil {
			return money.Percent(item.Amount, *item.SplitBuyerPct), money.Percent(item.Amount, *item.SplitSellerPct)
		}
		return item.Amount, decimal.Zero
	default:
		return item.Amount, decimal.Zero
	}
}
