package repository

import (
	"context"
	"errors"
	"fmt"

	"geocoding-cache/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CacheRepository implements the geocoding cache accessor for PostgreSQL.
type CacheRepository struct {
	db *pgxpool.Pool
}

// NewCacheRepository creates a new PostgreSQL cache repository
func NewCacheRepository(db *pgxpool.Pool) *CacheRepository {
	return &CacheRepository{db: db}
}

// EnsureSchema creates the cache table when it does not exist yet.
func (r *CacheRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS geocoding_cache (
		address TEXT PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	_, err := r.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("repository: failed to ensure cache schema: %w", err)
	}
	return nil
}

// GetEntry looks up a cache row by its exact key. A missing row is not an
// error: it returns (nil, nil).
func (r *CacheRepository) GetEntry(ctx context.Context, key string) (*models.CacheEntry, error) {
	sql := `
		SELECT address, latitude, longitude, updated_at
		FROM geocoding_cache
		WHERE address = $1
	`

	var entry models.CacheEntry
	err := r.db.QueryRow(ctx, sql, key).Scan(
		&entry.Key,
		&entry.Latitude,
		&entry.Longitude,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to read cache entry: %w", err)
	}

	return &entry, nil
}

// UpsertCoordinates writes coordinates under the given key, replacing any
// existing row for that key. The conflict clause makes concurrent identical
// writes last-writer-wins instead of racing a read-then-insert sequence.
func (r *CacheRepository) UpsertCoordinates(ctx context.Context, key string, coords models.Coordinates) error {
	sql := `
		INSERT INTO geocoding_cache (address, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (address) DO UPDATE
		SET latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    updated_at = now()
	`

	_, err := r.db.Exec(ctx, sql, key, coords.Latitude, coords.Longitude)
	if err != nil {
		return fmt.Errorf("repository: failed to upsert cache entry: %w", err)
	}

	return nil
}
