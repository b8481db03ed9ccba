package dto

import (
	"fmt"
	"time"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// PropertyLocationRequest identifies the property geography.
type PropertyLocationRequest struct {
	State  string `json:"state" binding:"required"`
	County string `json:"county"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// AncillaryDocRequest describes one additional recordable document.
type AncillaryDocRequest struct {
	DocType string `json:"doc_type"`
	Count   int    `json:"count"`
	Pages   int    `json:"pages"`
}

// DocumentSetRequest carries document counts and pages for recording.
type DocumentSetRequest struct {
	DeedDocsCount     int                   `json:"deed_docs_count"`
	DeedPages         int                   `json:"deed_pages"`
	MortgageDocsCount int                   `json:"mortgage_docs_count"`
	MortgagePages     int                   `json:"mortgage_pages"`
	Ancillary         []AncillaryDocRequest `json:"ancillary"`
}

// SelectionsRequest captures the buyer's title-insurance choices.
type SelectionsRequest struct {
	OwnerPolicy            bool     `json:"owner_policy"`
	OwnerPolicyPaidByBuyer bool     `json:"owner_policy_paid_by_buyer"`
	Endorsements           []string `json:"endorsements"`
	CPLFee                 bool     `json:"cpl_fee"`
}

// ChargeLineRequest is one recurring bill to prorate. ClosingDate defaults to
// the deal's closing date when omitted.
type ChargeLineRequest struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	ClosingDate   string          `json:"closing_date"`
	PaymentStatus string          `json:"payment_status"`
	PayerOfBill   string          `json:"payer_of_bill"`
}

// FlatFeeOverridesRequest replaces individual settlement fees from the
// profile. Absent fields keep the profile value.
type FlatFeeOverridesRequest struct {
	SettlementFee      *decimal.Decimal `json:"settlement_fee"`
	AttorneyFee        *decimal.Decimal `json:"attorney_fee"`
	Notary             *decimal.Decimal `json:"notary"`
	Wire               *decimal.Decimal `json:"wire"`
	Courier            *decimal.Decimal `json:"courier"`
	PayoffStatementFee *decimal.Decimal `json:"payoff_statement_fee"`
}

// CalculateDealRequest is the input contract of the calculation endpoint.
// Verbose includes the raw per-calculator intermediate results in the
// response diagnostics.
type CalculateDealRequest struct {
	Property         PropertyLocationRequest  `json:"property" binding:"required"`
	PurchasePrice    decimal.Decimal          `json:"purchase_price"`
	LoanAmount       decimal.Decimal          `json:"loan_amount"`
	ClosingDate      string                   `json:"closing_date" binding:"required"`
	Docs             DocumentSetRequest       `json:"docs"`
	Selections       SelectionsRequest        `json:"selections"`
	TaxLines         []ChargeLineRequest      `json:"tax_lines"`
	HOALines         []ChargeLineRequest      `json:"hoa_lines"`
	FlatFeeOverrides *FlatFeeOverridesRequest `json:"flat_fee_overrides"`
	Verbose          bool                     `json:"verbose"`
}

// ToDomain converts the request into a domain Deal, collecting every
// date-parsing violation instead of failing on the first.
func (r *CalculateDealRequest) ToDomain() (domain.Deal, *apperrors.ValidationErrors) {
	verrs := &apperrors.ValidationErrors{}

	closingDate := parseDateField(verrs, "closing_date", r.ClosingDate)

	deal := domain.Deal{
		Property: domain.PropertyLocation{
			State:  r.Property.State,
			County: r.Property.County,
			City:   r.Property.City,
			Zip:    r.Property.Zip,
		},
		PurchasePrice: r.PurchasePrice,
		LoanAmount:    r.LoanAmount,
		ClosingDate:   closingDate,
		Docs: domain.DocumentSet{
			DeedDocsCount:     r.Docs.DeedDocsCount,
			DeedPages:         r.Docs.DeedPages,
			MortgageDocsCount: r.Docs.MortgageDocsCount,
			MortgagePages:     r.Docs.MortgagePages,
		},
		Selections: domain.BuyerSelections{
			OwnerPolicy:            r.Selections.OwnerPolicy,
			OwnerPolicyPaidByBuyer: r.Selections.OwnerPolicyPaidByBuyer,
			Endorsements:           r.Selections.Endorsements,
			CPL:                    r.Selections.CPLFee,
		},
		TaxLines: toChargeLines(verrs, "tax_lines", r.TaxLines, closingDate),
		HOALines: toChargeLines(verrs, "hoa_lines", r.HOALines, closingDate),
	}

	for _, anc := range r.Docs.Ancillary {
		deal.Docs.Ancillary = append(deal.Docs.Ancillary, domain.AncillaryDoc{
			DocType: anc.DocType,
			Count:   anc.Count,
			Pages:   anc.Pages,
		})
	}

	if r.FlatFeeOverrides != nil {
		deal.FlatFeeOverrides = &domain.FlatFeeOverrides{
			SettlementFee:      r.FlatFeeOverrides.SettlementFee,
			AttorneyFee:        r.FlatFeeOverrides.AttorneyFee,
			Notary:             r.FlatFeeOverrides.Notary,
			Wire:               r.FlatFeeOverrides.Wire,
			Courier:            r.FlatFeeOverrides.Courier,
			PayoffStatementFee: r.FlatFeeOverrides.PayoffStatementFee,
		}
	}

	return deal, verrs
}

func toChargeLines(verrs *apperrors.ValidationErrors, field string, lines []ChargeLineRequest, dealClosing time.Time) []domain.RecurringChargeLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]domain.RecurringChargeLine, 0, len(lines))
	for i, line := range lines {
		closing := dealClosing
		if line.ClosingDate != "" {
			closing = parseDateField(verrs, fmt.Sprintf("%s[%d].closing_date", field, i), line.ClosingDate)
		}
		status := domain.PaymentStatus(line.PaymentStatus)
		if line.PaymentStatus == "" {
			status = domain.PaymentStatusUnknown
		}
		out = append(out, domain.RecurringChargeLine{
			Description:   line.Description,
			Amount:        line.Amount,
			PeriodStart:   parseDateField(verrs, fmt.Sprintf("%s[%d].period_start", field, i), line.PeriodStart),
			PeriodEnd:     parseDateField(verrs, fmt.Sprintf("%s[%d].period_end", field, i), line.PeriodEnd),
			ClosingDate:   closing,
			PaymentStatus: status,
			PayerOfBill:   line.PayerOfBill,
		})
	}
	return out
}

func parseDateField(verrs *apperrors.ValidationErrors, field, value string) time.Time {
	if value == "" {
		verrs.Add(field, "date is required in ISO 8601 format (YYYY-MM-DD)")
		return time.Time{}
	}
	t, err := dates.ParseISODate(value)
	if err != nil {
		verrs.Add(field, fmt.Sprintf("%q is not a valid ISO 8601 calendar date", value))
		return time.Time{}
	}
	return t
}
