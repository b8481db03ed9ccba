package domain

import (
	"fmt"
	"time"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Side identifies the party a settlement-statement entry belongs to.
type Side string

const (
	Buyer  Side = "BUYER"
	Seller Side = "SELLER"
)

// PaymentStatus describes whether a recurring bill was already paid for the
// full billing period when the deal closes.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusUnknown PaymentStatus = "unknown"
)

// PropertyLocation identifies the geography of the property. State is
// required; the locality fields narrow jurisdiction resolution when supplied.
type PropertyLocation struct {
	State  string `json:"state"`
	County string `json:"county,omitempty"`
	City   string `json:"city,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// AncillaryDoc describes an additional recordable document beyond the deed
// and mortgage (e.g. an assignment or affidavit).
type AncillaryDoc struct {
	DocType string `json:"doc_type"`
	Count   int    `json:"count"`
	Pages   int    `json:"pages"`
}

// DocumentSet carries the document counts and page totals submitted for
// government recording.
type DocumentSet struct {
	DeedDocsCount     int            `json:"deed_docs_count"`
	DeedPages         int            `json:"deed_pages"`
	MortgageDocsCount int            `json:"mortgage_docs_count"`
	MortgagePages     int            `json:"mortgage_pages"`
	Ancillary         []AncillaryDoc `json:"ancillary,omitempty"`
}

// BuyerSelections captures the buyer's title-insurance choices.
// OwnerPolicyPaidByBuyer is an explicit allocation input: when set, the owner
// policy premium becomes a buyer debit instead of a seller credit.
type BuyerSelections struct {
	OwnerPolicy            bool     `json:"owner_policy"`
	OwnerPolicyPaidByBuyer bool     `json:"owner_policy_paid_by_buyer"`
	Endorsements           []string `json:"endorsements,omitempty"`
	CPL                    bool     `json:"cpl_fee"`
}

// RecurringChargeLine is a periodic bill (property tax, HOA dues) to be
// prorated between buyer and seller by ownership days.
type RecurringChargeLine struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	ClosingDate   time.Time       `json:"closing_date"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PayerOfBill   string          `json:"payer_of_bill,omitempty"`
}

// FlatFeeOverrides lets a deal replace individual settlement fees from the
// jurisdiction profile. Nil fields leave the profile value in place.
type FlatFeeOverrides struct {
	SettlementFee      *decimal.Decimal `json:"settlement_fee,omitempty"`
	AttorneyFee        *decimal.Decimal `json:"attorney_fee,omitempty"`
	Notary             *decimal.Decimal `json:"notary,omitempty"`
	Wire               *decimal.Decimal `json:"wire,omitempty"`
	Courier            *decimal.Decimal `json:"courier,omitempty"`
	PayoffStatementFee *decimal.Decimal `json:"payoff_statement_fee,omitempty"`
}

// Deal is the purchase transaction under calculation. It is created by the
// caller and consumed read-only by the engine; no calculator mutates it.
type Deal struct {
	Property         PropertyLocation      `json:"property"`
	PurchasePrice    decimal.Decimal       `json:"purchase_price"`
	LoanAmount       decimal.Decimal       `json:"loan_amount"`
	ClosingDate      time.Time             `json:"closing_date"`
	Docs             DocumentSet           `json:"docs"`
	Selections       BuyerSelections       `json:"selections"`
	TaxLines         []RecurringChargeLine `json:"tax_lines,omitempty"`
	HOALines         []RecurringChargeLine `json:"hoa_lines,omitempty"`
	FlatFeeOverrides *FlatFeeOverrides     `json:"flat_fee_overrides,omitempty"`
}

// Validate checks the deal against the input contract, collecting every
// violation instead of stopping at the first. Date parsing failures are
// reported by the DTO layer before the domain deal exists, so dates here are
// checked only for semantic consistency.
func (d *Deal) Validate() *apperrors.ValidationErrors {
	verrs := &apperrors.ValidationErrors{}

	if d.Property.State == "" {
		verrs.Add("property.state", "state is required")
	}
	if d.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		verrs.Add("purchase_price", "purchase price must be greater than 0")
	}
	if d.LoanAmount.IsNegative() || d.LoanAmount.GreaterThan(d.PurchasePrice) {
		verrs.Add("loan_amount", "loan amount must be between 0 and purchase price")
	}
	if d.ClosingDate.IsZero() {
		verrs.Add("closing_date", "closing date is required")
	}

	if d.Docs.DeedDocsCount < 0 {
		verrs.Add("docs.deed_docs_count", "deed document count must be non-negative")
	}
	if d.Docs.DeedPages < 0 {
		verrs.Add("docs.deed_pages", "deed pages must be non-negative")
	}
	if d.Docs.MortgageDocsCount < 0 {
		verrs.Add("docs.mortgage_docs_count", "mortgage document count must be non-negative")
	}
	if d.Docs.MortgagePages < 0 {
		verrs.Add("docs.mortgage_pages", "mortgage pages must be non-negative")
	}
	for i, anc := range d.Docs.Ancillary {
		if anc.DocType == "" {
			verrs.Add(fmt.Sprintf("docs.ancillary[%d].doc_type", i), "document type is required")
		}
		if anc.Count < 0 {
			verrs.Add(fmt.Sprintf("docs.ancillary[%d].count", i), "count must be non-negative")
		}
		if anc.Pages < 0 {
			verrs.Add(fmt.Sprintf("docs.ancillary[%d].pages", i), "pages must be non-negative")
		}
	}

	validateChargeLines(verrs, "tax_lines", d.TaxLines)
	validateChargeLines(verrs, "hoa_lines", d.HOALines)

	return verrs
}

func validateChargeLines(verrs *apperrors.ValidationErrors, field string, lines []RecurringChargeLine) {
	for i, line := range lines {
		if line.Amount.IsNegative() {
			verrs.Add(fmt.Sprintf("%s[%d].amount", field, i), "amount must be non-negative")
		}
		switch line.PaymentStatus {
		case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusUnknown:
		default:
			verrs.Add(fmt.Sprintf("%s[%d].payment_status", field, i), "payment status must be paid, unpaid or unknown")
		}
		if !line.PeriodStart.IsZero() && !line.PeriodEnd.IsZero() && !line.PeriodEnd.After(line.PeriodStart) {
			verrs.Add(fmt.Sprintf("%s[%d].period_end", field, i), "period end must be after period start")
		}
	}
}
