package dto

import (
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemResponse is one settlement-statement entry.
type LineItemResponse struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Side        string          `json:"side"`
	EntryType   string          `json:"entry_type"`
}

// SideStatementResponse is the per-party debit/credit view.
type SideStatementResponse struct {
	Debits       []LineItemResponse `json:"debits"`
	Credits      []LineItemResponse `json:"credits"`
	TotalDebits  decimal.Decimal    `json:"total_debits"`
	TotalCredits decimal.Decimal    `json:"total_credits"`
	Net          decimal.Decimal    `json:"net"`
}

// CategoryGroupResponse collects line items of one category with its signed
// subtotal.
type CategoryGroupResponse struct {
	Category string             `json:"category"`
	Items    []LineItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// DiagnosticsResponse records the matched jurisdiction path and, in verbose
// mode, the raw per-calculator results.
type DiagnosticsResponse struct {
	JurisdictionPathMatched string                     `json:"jurisdiction_profile_matched"`
	Warnings                []string                   `json:"validation_warnings,omitempty"`
	Details                 *domain.CalculationDetails `json:"calculation_details,omitempty"`
}

// CalculateClosingCostsResponse is the output of the calculation endpoint.
type CalculateClosingCostsResponse struct {
	Buyer               SideStatementResponse   `json:"buyer"`
	Seller              SideStatementResponse   `json:"seller"`
	LineItemsByCategory []CategoryGroupResponse `json:"line_items_by_category"`
	Diagnostics         DiagnosticsResponse     `json:"diagnostics"`
}

// ToLineItemResponse converts a domain.LineItem to its DTO.
func ToLineItemResponse(li domain.LineItem) LineItemResponse {
	return LineItemResponse{
		Description: li.Description,
		Category:    string(li.Category),
		Amount:      li.Amount,
		Side:        string(li.Side),
		EntryType:   string(li.EntryType),
	}
}

func toLineItemResponses(items []domain.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, li := range items {
		out[i] = ToLineItemResponse(li)
	}
	return out
}

func toSideStatementResponse(s domain.SideStatement) SideStatementResponse {
	return SideStatementResponse{
		Debits:       toLineItemResponses(s.Debits),
		Credits:      toLineItemResponses(s.Credits),
		TotalDebits:  s.TotalDebits,
		TotalCredits: s.TotalCredits,
		Net:          s.Net,
	}
}

// ToCalculateClosingCostsResponse converts the aggregated domain result into
// the response DTO.
func ToCalculateClosingCostsResponse(res *domain.ClosingCostResult) CalculateClosingCostsResponse {
	groups := make([]CategoryGroupResponse, len(res.LineItemsByCategory))
	for i, g := range res.LineItemsByCategory {
		groups[i] = CategoryGroupResponse{
			Category: string(g.Category),
			Items:    toLineItemResponses(g.Items),
			Subtotal: g.Subtotal,
		}
	}
	return CalculateClosingCostsResponse{
		Buyer:               toSideStatementResponse(res.Buyer),
		Seller:              toSideStatementResponse(res.Seller),
		LineItemsByCategory: groups,
		Diagnostics: DiagnosticsResponse{
			JurisdictionPathMatched: res.Diagnostics.JurisdictionPathMatched,
			Warnings:                res.Diagnostics.Warnings,
			Details:                 res.Diagnostics.Details,
		},
	}
}
