package services

import (
	"context"

	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	portsrepo "github.com/settleworks/closing_cost_engine/internal/core/ports/repositories"
	portssvc "github.com/settleworks/closing_cost_engine/internal/core/ports/services"
	"github.com/settleworks/closing_cost_engine/internal/dto"
)

type calculationService struct {
	BaseService
	profileRepo portsrepo.ProfileReaderRepository
}

// NewCalculationService creates the closing cost calculation service.
func NewCalculationService(profileRepo portsrepo.ProfileReaderRepository) portssvc.CalculationSvcFacade {
	return &calculationService{profileRepo: profileRepo}
}

// CalculateClosingCosts validates the deal, resolves the jurisdiction profile,
// runs the calculators and aggregates their outputs into a settlement
// statement. The same request against the same profile store always yields
// the same result.
func (s *calculationService) CalculateClosingCosts(ctx context.Context, req dto.CalculateDealRequest) (*domain.ClosingCostResult, error) {
	deal, verrs := req.ToDomain()
	verrs.Merge(deal.Validate())
	if verrs.HasViolations() {
		s.LogInfo(ctx, "deal rejected by validation", "violations", len(verrs.Violations))
		return nil, verrs.Err()
	}

	profile, matchedPath, err := ResolveJurisdiction(ctx, s.profileRepo, deal.Property)
	if err != nil {
		s.LogError(ctx, err, "jurisdiction resolution failed",
			"state", deal.Property.State, "county", deal.Property.County, "city", deal.Property.City)
		return nil, err
	}
	s.LogDebug(ctx, "jurisdiction resolved", "path", matchedPath)

	taxes, err := CalculateTransferTaxes(&deal, profile)
	if err != nil {
		s.LogError(ctx, err, "transfer tax calculation failed", "path", matchedPath)
		return nil, err
	}

	recording := CalculateRecordingFees(deal.Docs, profile.RecordingFees)
	title := CalculateTitleInsurance(&deal, profile.TitleInsurance)

	chargeLines := make([]domain.RecurringChargeLine, 0, len(deal.TaxLines)+len(deal.HOALines))
	chargeLines = append(chargeLines, deal.TaxLines...)
	chargeLines = append(chargeLines, deal.HOALines...)
	prorations, err := CalculateProrations(chargeLines, profile.Prorations)
	if err != nil {
		s.LogError(ctx, err, "proration calculation failed", "path", matchedPath)
		return nil, err
	}

	fees := MergeSettlementFees(profile.SettlementFees, deal.FlatFeeOverrides)

	result := BuildSettlementStatement(taxes, recording, title, prorations, fees, deal.Selections)
	result.Diagnostics.JurisdictionPathMatched = matchedPath
	if req.Verbose {
		result.Diagnostics.Details = &domain.CalculationDetails{
			TransferTaxes:  taxes,
			RecordingFees:  recording,
			TitleInsurance: title,
			Prorations:     prorations,
		}
	}

	s.LogInfo(ctx, "closing costs calculated",
		"path", matchedPath,
		"buyer_net", result.Buyer.Net.String(),
		"seller_net", result.Seller.Net.String())
	return result, nil
}
