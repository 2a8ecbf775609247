package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"s7scheduling/models"
	"s7scheduling/store"
)

func (db *DB) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name, address, type FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, *location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

func (db *DB) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	row := db.Pool.QueryRow(ctx, `SELECT id, name, address, type FROM locations WHERE id = $1`, id)

	location, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("location %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return location, nil
}

func (db *DB) CreateLocation(ctx context.Context, location models.Location) error {
	query := `INSERT INTO locations (id, name, address, type) VALUES ($1, $2, $3, $4)`

	_, err := db.Pool.Exec(ctx, query, location.ID, location.Name, location.Address, string(location.Type))
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	db.log.Info("Created location", zap.String("name", location.Name), zap.Stringer("id", location.ID))
	return nil
}

// DeleteLocation removes a location. Scenes keep existing with their
// location_id cleared by ON DELETE SET NULL.
func (db *DB) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("location %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func scanLocation(row rowScanner) (*models.Location, error) {
	var (
		location models.Location
		kind     string
	)
	if err := row.Scan(&location.ID, &location.Name, &location.Address, &kind); err != nil {
		return nil, err
	}
	location.Type = models.LocationType(kind)
	return &location, nil
}
