package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"s7scheduling/models"
)

func (s *Service) ListLocations(ctx context.Context) ([]models.Location, error) {
	return s.store.ListLocations(ctx)
}

func (s *Service) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	return s.store.GetLocation(ctx, id)
}

func (s *Service) CreateLocation(ctx context.Context, req models.CreateLocationRequest) (*models.Location, *Notice, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, invalid("name", "Location name is required")
	}
	if tooLong(name, MaxNameLength) {
		return nil, nil, invalid("name", fmt.Sprintf("Location name must be at most %d characters", MaxNameLength))
	}
	if !req.Type.Valid() {
		return nil, nil, invalid("type", fmt.Sprintf("Location type must be %s or %s", models.LocationInterior, models.LocationExterior))
	}

	location := models.Location{
		ID:      uuid.New(),
		Name:    name,
		Address: strings.TrimSpace(req.Address),
		Type:    req.Type,
	}
	if err := s.store.CreateLocation(ctx, location); err != nil {
		return nil, nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.logger(ctx).Info("Location created", zap.Stringer("location_id", location.ID), zap.String("name", location.Name))
	return &location, success("Location created successfully"), nil
}

// DeleteLocation detaches the location from every scene that used it, so
// all cached boards are dropped.
func (s *Service) DeleteLocation(ctx context.Context, id uuid.UUID) (*Notice, error) {
	if err := s.store.DeleteLocation(ctx, id); err != nil {
		return nil, err
	}
	if err := s.boards.InvalidateAll(ctx); err != nil {
		s.logger(ctx).Warn("Failed to invalidate stripboards", zap.Error(err))
	}

	s.logger(ctx).Info("Location deleted", zap.Stringer("location_id", id))
	return success("Location deleted successfully"), nil
}
