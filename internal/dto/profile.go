package dto

import (
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
)

// SaveProfileRequest is the payload for storing a jurisdiction profile. The
// nested schedules bind straight into the strongly-typed configuration
// schema; the profile service validates the result before it enters the
// resolvable set.
type SaveProfileRequest struct {
	State          string                       `json:"state" binding:"required"`
	County         string                       `json:"county"`
	City           string                       `json:"city"`
	Zip            string                       `json:"zip"`
	TransferTaxes  []domain.TransferTaxRule     `json:"transfer_taxes"`
	RecordingFees  domain.RecordingProfile      `json:"recording_fees"`
	TitleInsurance domain.TitleProfile          `json:"title_insurance"`
	SettlementFees domain.SettlementFeesProfile `json:"settlement_fees"`
	Prorations     domain.ProrationProfile      `json:"prorations"`
}

// ToDomain converts the request into a domain JurisdictionProfile.
func (r *SaveProfileRequest) ToDomain() domain.JurisdictionProfile {
	return domain.JurisdictionProfile{
		State:          r.State,
		County:         r.County,
		City:           r.City,
		Zip:            r.Zip,
		TransferTaxes:  r.TransferTaxes,
		RecordingFees:  r.RecordingFees,
		TitleInsurance: r.TitleInsurance,
		SettlementFees: r.SettlementFees,
		Prorations:     r.Prorations,
	}
}

// ProfileResponse returns a stored profile together with the geography path
// it resolves under.
type ProfileResponse struct {
	Path    string                     `json:"path"`
	Profile domain.JurisdictionProfile `json:"profile"`
}

// ToProfileResponse converts a domain profile into its response DTO.
func ToProfileResponse(p *domain.JurisdictionProfile) ProfileResponse {
	return ProfileResponse{
		Path:    p.Path(),
		Profile: *p,
	}
}

// ToProfileResponses converts a slice of profiles.
func ToProfileResponses(profiles []domain.JurisdictionProfile) []ProfileResponse {
	out := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		out[i] = ToProfileResponse(&profiles[i])
	}
	return out
}
