package services

import (
	"context"
	"errors"
	"strings"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	portsrepo "github.com/settleworks/closing_cost_engine/internal/core/ports/repositories"
)

// NormalizePath canonicalizes a geography path for store lookups.
func NormalizePath(path string) string {
	return strings.ToUpper(strings.TrimSpace(path))
}

// CandidatePaths builds the resolution chain for a property location in
// descending specificity: zip, city, county, state, then the DEFAULT
// fallback. Paths whose locality fields were not supplied are skipped.
func CandidatePaths(loc domain.PropertyLocation) []string {
	state := NormalizePath(loc.State)
	county := NormalizePath(loc.County)
	city := NormalizePath(loc.City)
	zip := strings.TrimSpace(loc.Zip)

	paths := make([]string, 0, 5)
	if county != "" && city != "" && zip != "" {
		paths = append(paths, state+"/"+county+"/"+city+"/"+zip)
	}
	if county != "" && city != "" {
		paths = append(paths, state+"/"+county+"/"+city)
	}
	if county != "" {
		paths = append(paths, state+"/"+county)
	}
	paths = append(paths, state, domain.DefaultProfilePath)
	return paths
}

// ResolveJurisdiction finds the best-matching profile for a property
// location by trying each candidate path in order against the store. Pure
// lookup: identical inputs against an unchanged store always resolve to the
// identical path.
func ResolveJurisdiction(ctx context.Context, repo portsrepo.ProfileReaderRepository, loc domain.PropertyLocation) (*domain.JurisdictionProfile, string, error) {
	paths := CandidatePaths(loc)
	for _, path := range paths {
		profile, err := repo.FindProfileByPath(ctx, path)
		if err == nil {
			return profile, path, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", err
		}
	}
	return nil, "", &apperrors.ConfigNotFoundError{
		State:          loc.State,
		County:         loc.County,
		City:           loc.City,
		Zip:            loc.Zip,
		AttemptedPaths: paths,
	}
}
