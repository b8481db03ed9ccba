package domain

import "github.com/shopspring/decimal"

// EntryType indicates whether a line item is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Category groups line items on the settlement statement.
type Category string

const (
	CategoryTransferTaxes  Category = "Transfer Taxes"
	CategoryRecordingFees  Category = "Recording Fees"
	CategoryTitleInsurance Category = "Title Insurance"
	CategorySettlementFees Category = "Settlement Fees"
	CategoryProrations     Category = "Prorations"
)

// LineItem is a single settlement-statement entry. Amount is always a
// non-negative magnitude; EntryType carries the debit/credit direction and
// Side the party it belongs to. Never mutated after creation.
type LineItem struct {
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Side        Side            `json:"side"`
	EntryType   EntryType       `json:"entry_type"`
}

// SignedAmount returns the amount signed by convention: debits positive,
// credits negative. Used for category subtotals.
func (li LineItem) SignedAmount() decimal.Decimal {
	if li.EntryType == Credit {
		return li.Amount.Neg()
	}
	return li.Amount
}

// TaxRuleResult is the evaluation of one enabled transfer-tax rule before
// allocation.
type TaxRuleResult struct {
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	BaseAmount     decimal.Decimal  `json:"base_amount"`
	Amount         decimal.Decimal  `json:"amount"`
	PayerDefault   PayerType        `json:"payer_default"`
	SplitBuyerPct  *decimal.Decimal `json:"split_buyer_pct,omitempty"`
	SplitSellerPct *decimal.Decimal `json:"split_seller_pct,omitempty"`
}

// TransferTaxResult is the output of the transfer tax calculator.
type TransferTaxResult struct {
	Items []TaxRuleResult `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// RecordingFeesResult is the output of the recording fee calculator. The
// breakdown is keyed "deed", "mortgage" and "ancillary_<doc_type>".
type RecordingFeesResult struct {
	DeedFee       decimal.Decimal            `json:"deed_fee"`
	MortgageFee   decimal.Decimal            `json:"mortgage_fee"`
	AncillaryFees decimal.Decimal            `json:"ancillary_fees"`
	Total         decimal.Decimal            `json:"total"`
	Breakdown     map[string]decimal.Decimal `json:"breakdown"`
}

// TitleInsuranceResult is the output of the title insurance calculator.
// Premiums are post-discount; the discount is recorded separately for
// display.
type TitleInsuranceResult struct {
	LenderPremium        decimal.Decimal `json:"lender_policy_premium"`
	OwnerPremium         decimal.Decimal `json:"owner_policy_premium"`
	SimultaneousDiscount decimal.Decimal `json:"simultaneous_discount_applied"`
	EndorsementsTotal    decimal.Decimal `json:"endorsements_total"`
	CPLFee               decimal.Decimal `json:"cpl_fee"`
	Total                decimal.Decimal `json:"total"`
}

// ProratedLine is one recurring charge split between buyer and seller.
// BuyerShare covers the days from period start up to closing, SellerShare the
// remainder; the two always sum to OriginalAmount. The debited flags carry
// the HUD treatment decided from payment status.
type ProratedLine struct {
	Description     string          `json:"description"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	DaysInPeriod    int64           `json:"days_in_period"`
	BuyerDays       int64           `json:"buyer_days"`
	SellerDays      int64           `json:"seller_days"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	BuyerShare      decimal.Decimal `json:"buyer_share"`
	SellerShare     decimal.Decimal `json:"seller_share"`
	BuyerIsDebited  bool            `json:"buyer_is_debited"`
	SellerIsDebited bool            `json:"seller_is_debited"`
}

// ProrationResult is the output of the proration calculator.
type ProrationResult struct {
	Lines         []ProratedLine  `json:"line_items"`
	TotalProrated decimal.Decimal `json:"total_prorated"`
}

// SideStatement is the per-party view of the settlement statement.
// Net = TotalDebits - TotalCredits; positive means the party owes money at
// closing.
type SideStatement struct {
	Debits       []LineItem      `json:"debits"`
	Credits      []LineItem      `json:"credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Net          decimal.Decimal `json:"net"`
}

// CategoryGroup collects the line items of one category across both sides.
// Subtotal is the signed sum of the member items.
type CategoryGroup struct {
	Category Category        `json:"category"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CalculationDetails carries the raw per-calculator intermediate results for
// audit and debugging. Populated only in verbose mode.
type CalculationDetails struct {
	TransferTaxes  TransferTaxResult    `json:"transfer_taxes"`
	RecordingFees  RecordingFeesResult  `json:"recording_fees"`
	TitleInsurance TitleInsuranceResult `json:"title_insurance"`
	Prorations     ProrationResult      `json:"prorations"`
}

// Diagnostics records how the calculation was configured and resolved.
type Diagnostics struct {
	JurisdictionPathMatched string              `json:"jurisdiction_profile_matched"`
	Warnings                []string            `json:"validation_warnings,omitempty"`
	Details                 *CalculationDetails `json:"calculation_details,omitempty"`
}

// ClosingCostResult is the aggregated output of one calculate invocation.
// Constructed fresh every time; no cross-call state.
type ClosingCostResult struct {
	Buyer               SideStatement   `json:"buyer"`
	Seller              SideStatement   `json:"seller"`
	LineItemsByCategory []CategoryGroup `json:"line_items_by_category"`
	Diagnostics         Diagnostics     `json:"diagnostics"`
}
