package services

import (
	"context"

	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	portsrepo "github.com/settleworks/closing_cost_engine/internal/core/ports/repositories"
	portssvc "github.com/settleworks/closing_cost_engine/internal/core/ports/services"
	"github.com/settleworks/closing_cost_engine/internal/dto"
)

type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates the jurisdiction profile management service.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfileByPath(ctx context.Context, path string) (*domain.JurisdictionProfile, error) {
	return s.profileRepo.FindProfileByPath(ctx, NormalizePath(path))
}

func (s *profileService) ListProfiles(ctx context.Context) ([]domain.JurisdictionProfile, error) {
	return s.profileRepo.ListProfiles(ctx)
}

// SaveProfile validates the profile and stores it under its geography path.
// An invalid profile never enters the resolvable set.
func (s *profileService) SaveProfile(ctx context.Context, req dto.SaveProfileRequest) (*domain.JurisdictionProfile, error) {
	profile := req.ToDomain()
	if verrs := profile.Validate(); verrs.HasViolations() {
		s.LogInfo(ctx, "profile rejected by validation",
			"path", profile.Path(), "violations", len(verrs.Violations))
		return nil, verrs.Err()
	}

	path := profile.Path()
	if err := s.profileRepo.SaveProfile(ctx, path, profile); err != nil {
		s.LogError(ctx, err, "failed to save profile", "path", path)
		return nil, err
	}
	s.LogInfo(ctx, "profile saved", "path", path)
	return &profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, path string) error {
	normalized := NormalizePath(path)
	if err := s.profileRepo.DeleteProfile(ctx, normalized); err != nil {
		s.LogError(ctx, err, "failed to delete profile", "path", normalized)
		return err
	}
	s.LogInfo(ctx, "profile deleted", "path", normalized)
	return nil
}
