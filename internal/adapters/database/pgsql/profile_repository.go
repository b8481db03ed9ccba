package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	"github.com/settleworks/closing_cost_engine/internal/core/domain"
	portsrepo "github.com/settleworks/closing_cost_engine/internal/core/ports/repositories"
)

// PgxProfileRepository stores jurisdiction profiles as JSONB rows keyed by
// geography path.
type PgxProfileRepository struct {
	pool *pgxpool.Pool
}

func newPgxProfileRepository(pool *pgxpool.Pool) *PgxProfileRepository {
	return &PgxProfileRepository{pool: pool}
}

// NewRepositoryProvider creates the repository provider backed by PostgreSQL.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProfileRepo: newPgxProfileRepository(dbPool),
	}
}

// SaveProfile upserts the profile stored under a geography path.
func (r *PgxProfileRepository) SaveProfile(ctx context.Context, path string, profile domain.JurisdictionProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %s: %w", path, err)
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO jurisdiction_profiles (path, profile, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (path) DO UPDATE SET
			profile = EXCLUDED.profile,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err = r.pool.Exec(ctx, query, path, payload, now, now)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", path, err)
	}
	return nil
}

// FindProfileByPath retrieves the profile stored under a geography path.
func (r *PgxProfileRepository) FindProfileByPath(ctx context.Context, path string) (*domain.JurisdictionProfile, error) {
	query := `
		SELECT profile
		FROM jurisdiction_profiles
		WHERE path = $1;
	`
	var payload []byte
	err := r.pool.QueryRow(ctx, query, path).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile %s: %w", path, err)
	}

	var profile domain.JurisdictionProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", path, err)
	}
	return &profile, nil
}

// ListProfiles returns every stored profile ordered by path.
func (r *PgxProfileRepository) ListProfiles(ctx context.Context) ([]domain.JurisdictionProfile, error) {
	query := `
		SELECT profile
		FROM jurisdiction_profiles
		ORDER BY path;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.JurisdictionProfile
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		var profile domain.JurisdictionProfile
		if err := json.Unmarshal(payload, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating profile rows: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes the profile stored under a geography path.
func (r *PgxProfileRepository) DeleteProfile(ctx context.Context, path string) error {
	query := `
		DELETE FROM jurisdiction_profiles
		WHERE path = $1;
	`
	tag, err := r.pool.Exec(ctx, query, path)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", path, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
