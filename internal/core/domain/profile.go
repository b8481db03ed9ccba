package domain

import (
	"fmt"
	"strings"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultProfilePath is the key of the catch-all profile used when no
// geography-specific profile resolves.
const DefaultProfilePath = "DEFAULT"

// BaseType selects which deal amount a transfer-tax rule is computed on.
type BaseType string

const (
	BasePrice    BaseType = "price"
	BaseLoan     BaseType = "loan"
	BaseDeed     BaseType = "deed"
	BaseMortgage BaseType = "mortgage"
)

// CalcType selects how a transfer-tax rule turns its base into an amount.
type CalcType string

const (
	CalcPercent        CalcType = "percent"
	CalcFlat           CalcType = "flat"
	CalcTieredBrackets CalcType = "tiered_brackets"
)

// PayerType identifies the default payer of a transfer tax.
type PayerType string

const (
	PayerBuyer  PayerType = "buyer"
	PayerSeller PayerType = "seller"
	PayerSplit  PayerType = "split"
)

// DayCountMethod is the convention for counting days between two dates.
type DayCountMethod string

const (
	DayCountActual365 DayCountMethod = "actual_365"
	DayCountActual360 DayCountMethod = "actual_360"
	DayCount30360     DayCountMethod = "30_360"
)

// ClosingDayOwner states which party owns the property on the closing day
// for proration purposes.
type ClosingDayOwner string

const (
	ClosingDayBuyer  ClosingDayOwner = "buyer"
	ClosingDaySeller ClosingDayOwner = "seller"
)

// RoundingMode controls the precision of prorated shares.
type RoundingMode string

const (
	RoundCents        RoundingMode = "cents"
	RoundWholeDollars RoundingMode = "whole_dollars"
)

// ProrationStyle resolves the debit/credit treatment of recurring charges
// whose payment status is unknown.
type ProrationStyle string

const (
	StylePaidInAdvance ProrationStyle = "paid_in_advance_common"
	StyleArrears       ProrationStyle = "arrears_common"
)

// Bracket is one slice of a tiered transfer-tax table. A nil MaxInclusive
// means the bracket is unbounded above.
type Bracket struct {
	MinInclusive decimal.Decimal  `json:"min_inclusive"`
	MaxInclusive *decimal.Decimal `json:"max_inclusive"`
	Rate         decimal.Decimal  `json:"rate"`
}

// TransferTaxRule is one tax a jurisdiction levies on a transaction.
// Rules with Enabled=false are skipped entirely.
type TransferTaxRule struct {
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	BaseType       BaseType         `json:"base_type"`
	CalcType       CalcType         `json:"calc_type"`
	PayerDefault   PayerType        `json:"payer_default"`
	SplitBuyerPct  *decimal.Decimal `json:"split_buyer_pct,omitempty"`
	SplitSellerPct *decimal.Decimal `json:"split_seller_pct,omitempty"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	FlatAmount     *decimal.Decimal `json:"flat_amount,omitempty"`
	Brackets       []Bracket        `json:"brackets,omitempty"`
	Enabled        bool             `json:"enabled"`
}

// RecordingFeeSchedule holds the per-document and per-page rates for one
// document type.
type RecordingFeeSchedule struct {
	PerDocumentFee decimal.Decimal `json:"per_document_fee"`
	PerPageFee     decimal.Decimal `json:"per_page_fee"`
}

// RecordingProfile is the government recording fee schedule of a
// jurisdiction. Ancillary document types without an entry contribute zero.
type RecordingProfile struct {
	Deed      RecordingFeeSchedule            `json:"deed"`
	Mortgage  RecordingFeeSchedule            `json:"mortgage"`
	Ancillary map[string]RecordingFeeSchedule `json:"ancillary,omitempty"`
}

// TitleProfile is the title-insurance rate schedule. Rates are percentages;
// the simultaneous-issue discount is a fraction (0.25 = 25% off).
type TitleProfile struct {
	LenderPolicyRate          decimal.Decimal            `json:"lender_policy_rate"`
	OwnerPolicyRate           decimal.Decimal            `json:"owner_policy_rate"`
	SimultaneousIssueDiscount decimal.Decimal            `json:"simultaneous_issue_discount"`
	Endorsements              map[string]decimal.Decimal `json:"endorsements,omitempty"`
	CPLFee                    decimal.Decimal            `json:"cpl_fee"`
}

// SettlementFeesProfile is the flat-fee schedule. A zero value means the fee
// does not apply in this jurisdiction.
type SettlementFeesProfile struct {
	SettlementFee      decimal.Decimal `json:"settlement_fee,omitempty"`
	AttorneyFee        decimal.Decimal `json:"attorney_fee,omitempty"`
	Notary             decimal.Decimal `json:"notary,omitempty"`
	Wire               decimal.Decimal `json:"wire,omitempty"`
	Courier            decimal.Decimal `json:"courier,omitempty"`
	PayoffStatementFee decimal.Decimal `json:"payoff_statement_fee,omitempty"`
	TitleSearch        decimal.Decimal `json:"title_search,omitempty"`
	TitleExamination   decimal.Decimal `json:"title_examination,omitempty"`
}

// ProrationProfile is the jurisdiction's proration policy.
type ProrationProfile struct {
	DayCountMethod        DayCountMethod  `json:"day_count_method"`
	ClosingDayOwner       ClosingDayOwner `json:"closing_day_owner"`
	Rounding              RoundingMode    `json:"rounding"`
	DefaultProrationStyle ProrationStyle  `json:"default_proration_style"`
}

// JurisdictionProfile is the full configuration for one geography. Loaded
// once per calculation from the profile store; never mutated by the engine.
type JurisdictionProfile struct {
	State          string                `json:"state"`
	County         string                `json:"county,omitempty"`
	City           string                `json:"city,omitempty"`
	Zip            string                `json:"zip,omitempty"`
	TransferTaxes  []TransferTaxRule     `json:"transfer_taxes"`
	RecordingFees  RecordingProfile      `json:"recording_fees"`
	TitleInsurance TitleProfile          `json:"title_insurance"`
	SettlementFees SettlementFeesProfile `json:"settlement_fees"`
	Prorations     ProrationProfile      `json:"prorations"`
}

// Path returns the geography path this profile is stored under. The DEFAULT
// profile uses the reserved DefaultProfilePath key.
func (p *JurisdictionProfile) Path() string {
	if strings.EqualFold(p.State, DefaultProfilePath) {
		return DefaultProfilePath
	}
	parts := []string{strings.ToUpper(p.State)}
	if p.County != "" {
		parts = append(parts, strings.ToUpper(p.County))
		if p.City != "" {
			parts = append(parts, strings.ToUpper(p.City))
			if p.Zip != "" {
				parts = append(parts, p.Zip)
			}
		}
	}
	return strings.Join(parts, "/")
}

// Validate checks the profile's structural consistency. Profiles failing
// validation must be rejected at load time and excluded from the resolvable
// set.
func (p *JurisdictionProfile) Validate() *apperrors.ValidationErrors {
	verrs := &apperrors.ValidationErrors{}

	if p.State == "" {
		verrs.Add("state", "state is required")
	}
	if p.City != "" && p.County == "" {
		verrs.Add("county", "county is required when city is set")
	}
	if p.Zip != "" && (p.County == "" || p.City == "") {
		verrs.Add("zip", "county and city are required when zip is set")
	}

	for i, rule := range p.TransferTaxes {
		validateTransferTaxRule(verrs, fmt.Sprintf("transfer_taxes[%d]", i), rule)
	}

	switch p.Prorations.DayCountMethod {
	case DayCountActual365, DayCountActual360, DayCount30360:
	default:
		verrs.Add("prorations.day_count_method", "day count method must be actual_365, actual_360 or 30_360")
	}
	switch p.Prorations.ClosingDayOwner {
	case ClosingDayBuyer, ClosingDaySeller:
	default:
		verrs.Add("prorations.closing_day_owner", "closing day owner must be buyer or seller")
	}
	switch p.Prorations.Rounding {
	case RoundCents, RoundWholeDollars:
	default:
		verrs.Add("prorations.rounding", "rounding must be cents or whole_dollars")
	}
	switch p.Prorations.DefaultProrationStyle {
	case StylePaidInAdvance, StyleArrears:
	default:
		verrs.Add("prorations.default_proration_style", "default proration style must be paid_in_advance_common or arrears_common")
	}

	return verrs
}

func validateTransferTaxRule(verrs *apperrors.ValidationErrors, field string, rule TransferTaxRule) {
	if rule.Name == "" {
		verrs.Add(field+".name", "tax name is required")
	}

	switch rule.BaseType {
	case BasePrice, BaseLoan, BaseDeed, BaseMortgage:
	default:
		verrs.Add(field+".base_type", "base type must be price, loan, deed or mortgage")
	}

	switch rule.CalcType {
	case CalcPercent:
		if rule.Rate == nil {
			verrs.Add(field+".rate", "rate is required for percent calculation type")
		}
	case CalcFlat:
		if rule.FlatAmount == nil {
			verrs.Add(field+".flat_amount", "flat amount is required for flat calculation type")
		}
	case CalcTieredBrackets:
		validateBrackets(verrs, field+".brackets", rule.Brackets)
	default:
		verrs.Add(field+".calc_type", "calc type must be percent, flat or tiered_brackets")
	}

	switch rule.PayerDefault {
	case PayerBuyer, PayerSeller:
	case PayerSplit:
		if rule.SplitBuyerPct == nil || rule.SplitSellerPct == nil {
			verrs.Add(field+".payer_default", "split payer requires both split percentages")
		} else if !rule.SplitBuyerPct.Add(*rule.SplitSellerPct).Equal(decimal.NewFromInt(100)) {
			verrs.Add(field+".payer_default", "split percentages must sum to 100")
		}
	default:
		verrs.Add(field+".payer_default", "payer default must be buyer, seller or split")
	}
}

// validateBrackets enforces the only bracket shape the calculator treats as
// authoritative: an ordered, contiguous table starting at zero, with at most
// the last bracket unbounded.
func validateBrackets(verrs *apperrors.ValidationErrors, field string, brackets []Bracket) {
	if len(brackets) == 0 {
		verrs.Add(field, "brackets are required for tiered_brackets calculation type")
		return
	}
	if !brackets[0].MinInclusive.IsZero() {
		verrs.Add(field+"[0].min_inclusive", "first bracket must start at 0")
	}
	for i, b := range brackets {
		if b.MaxInclusive == nil {
			if i != len(brackets)-1 {
				verrs.Add(fmt.Sprintf("%s[%d].max_inclusive", field, i), "only the last bracket may be unbounded")
			}
			continue
		}
		if b.MaxInclusive.LessThanOrEqual(b.MinInclusive) {
			verrs.Add(fmt.Sprintf("%s[%d].max_inclusive", field, i), "upper bound must exceed lower bound")
		}
		if i+1 < len(brackets) && !brackets[i+1].MinInclusive.Equal(*b.MaxInclusive) {
			verrs.Add(fmt.Sprintf("%s[%d].min_inclusive", field, i+1), "brackets must be contiguous")
		}
	}
}
