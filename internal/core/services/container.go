package services

import (
	portsrepo "github.com/settleworks/closing_cost_engine/internal/core/ports/repositories"
	portssvc "github.com/settleworks/closing_cost_engine/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Calculation: NewCalculationService(repos.ProfileRepo),
		Profile:     NewProfileService(repos.ProfileRepo),
	}
}

// Compile-time interface implementation checks.
var (
	_ portssvc.CalculationSvcFacade = (*calculationService)(nil)
	_ portssvc.ProfileSvcFacade     = (*profileService)(nil)
)
