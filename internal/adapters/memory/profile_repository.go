package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	portsrepo "github.com/settleworks/closing_cost_engine/internal/core/ports/repositories"
)

// ProfileRepository is an in-memory jurisdiction profile store keyed by
// geography path. Safe for concurrent use.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.JurisdictionProfile
	order    []string
}

// NewProfileRepository creates an empty in-memory profile store.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]domain.JurisdictionProfile),
	}
}

// NewRepositoryProvider creates the repository provider backed by the
// in-memory store.
func NewRepositoryProvider(repo *ProfileRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo: repo,
	}
}

// SaveProfile stores a profile under a geography path, replacing any existing
// profile at that path.
func (r *ProfileRepository) SaveProfile(_ context.Context, path string, profile domain.JurisdictionProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[path]; !exists {
		r.order = append(r.order, path)
	}
	r.profiles[path] = profile
	return nil
}

// FindProfileByPath retrieves the profile stored under a geography path.
func (r *ProfileRepository) FindProfileByPath(_ context.Context, path string) (*domain.JurisdictionProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[path]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &profile, nil
}

// ListProfiles returns every stored profile in insertion order.
func (r *ProfileRepository) ListProfiles(_ context.Context) ([]domain.JurisdictionProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]domain.JurisdictionProfile, 0, len(r.order))
	for _, path := range r.order {
		profiles = append(profiles, r.profiles[path])
	}
	return profiles, nil
}

// DeleteProfile removes the profile stored under a geography path.
func (r *ProfileRepository) DeleteProfile(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[path]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.profiles, path)
	for i, p := range r.order {
		if p == path {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// LoadProfilesFromDir reads every *.json file in dir as a jurisdiction
// profile and stores the valid ones. Invalid profiles are logged and skipped
// so they never enter the resolvable set; a malformed file is not an error
// for the rest of the load.
func (r *ProfileRepository) LoadProfilesFromDir(ctx context.Context, dir string, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read profile directory %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		payload, err := os.ReadFile(fullPath)
		if err != nil {
			logger.Warn("Failed to read profile file", slog.String("file", fullPath), slog.String("error", err.Error()))
			continue
		}

		var profile domain.JurisdictionProfile
		if err := json.Unmarshal(payload, &profile); err != nil {
			logger.Warn("Failed to parse profile file", slog.String("file", fullPath), slog.String("error", err.Error()))
			continue
		}

		if verrs := profile.Validate(); verrs.HasViolations() {
			logger.Warn("Rejected invalid profile",
				slog.String("file", fullPath),
				slog.String("path", profile.Path()),
				slog.Int("violations", len(verrs.Violations)))
			continue
		}

		if err := r.SaveProfile(ctx, profile.Path(), profile); err != nil {
			return err
		}
		loaded++
	}

	logger.Info("Profiles loaded", slog.String("dir", dir), slog.Int("count", loaded))
	return nil
}
