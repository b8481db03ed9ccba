package services

import (
	"context"

	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/dto"
)

// CalculationSvcFacade defines the closing cost calculation contract.
// Calculate is a pure function of (deal, profile store): it performs no I/O
// beyond profile lookup and keeps no state between invocations.
type CalculationSvcFacade interface {
	// CalculateClosingCosts validates the deal, resolves the jurisdiction
	// profile, runs all calculators and aggregates the settlement statement.
	CalculateClosingCosts(ctx context.Context, req dto.CalculateDealRequest) (*domain.ClosingCostResult, error)
}
