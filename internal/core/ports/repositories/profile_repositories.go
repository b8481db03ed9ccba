package repositories

import (
	"context"

	"github.com/settleworks/closing_cost_engine/internal/core/domain"
)

// ProfileReaderRepository defines read operations against the jurisdiction
// profile store. The engine defines only this lookup contract, not the
// storage mechanism behind it.
type ProfileReaderRepository interface {
	// FindProfileByPath retrieves the profile stored under a geography path.
	// Returns apperrors.ErrNotFound when the path has no profile.
	FindProfileByPath(ctx context.Context, path string) (*domain.JurisdictionProfile, error)

	// ListProfiles returns every profile in the resolvable set.
	ListProfiles(ctx context.Context) ([]domain.JurisdictionProfile, error)
}

// ProfileWriterRepository defines write operations against the profile store.
type ProfileWriterRepository interface {
	// SaveProfile stores a profile under its geography path, replacing any
	// existing profile at that path.
	SaveProfile(ctx context.Context, path string, profile domain.JurisdictionProfile) error

	// DeleteProfile removes the profile at a path. Returns
	// apperrors.ErrNotFound when nothing is stored there.
	DeleteProfile(ctx context.Context, path string) error
}

// ProfileRepositoryFacade combines all profile store operations.
type ProfileRepositoryFacade interface {
	ProfileReaderRepository
	ProfileWriterRepository
}
