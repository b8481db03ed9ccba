package services

import (
	"context"

	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	"github.com/settleworks/closing_cost_engine/internal/dto"
)

// ProfileReaderSvc defines read operations for jurisdiction profiles.
type ProfileReaderSvc interface {
	// GetProfileByPath retrieves a stored profile by its geography path.
	GetProfileByPath(ctx context.Context, path string) (*domain.JurisdictionProfile, error)

	// ListProfiles retrieves every profile in the resolvable set.
	ListProfiles(ctx context.Context) ([]domain.JurisdictionProfile, error)
}

// ProfileWriterSvc defines write operations for jurisdiction profiles.
// Profiles are validated before storage; invalid profiles are rejected and
// never enter the resolvable set.
type ProfileWriterSvc interface {
	// SaveProfile validates and stores a profile under its geography path.
	SaveProfile(ctx context.Context, req dto.SaveProfileRequest) (*domain.JurisdictionProfile, error)

	// DeleteProfile removes the profile stored under a path.
	DeleteProfile(ctx context.Context, path string) error
}

// ProfileSvcFacade combines all profile-related service interfaces.
type ProfileSvcFacade interface {
	ProfileReaderSvc
	ProfileWriterSvc
}
