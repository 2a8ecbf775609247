// Package store owns the project, scene and location collections.
//
// A Store is the single owner of its state. The scheduling service is the
// only writer; everything else reads copies.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"s7scheduling/models"
)

// ErrNotFound is returned for any id that is not in the collection.
var ErrNotFound = errors.New("not found")

// ErrLocationNotFound is returned when a scene references a missing
// location. It wraps ErrNotFound.
var ErrLocationNotFound = fmt.Errorf("location %w", ErrNotFound)

// Store is implemented by the in-memory Memory store and by database.DB.
type Store interface {
	// ListProjects returns matching projects newest first with their scenes
	// populated, plus the total number of matches before pagination.
	ListProjects(ctx context.Context, q models.ProjectQuery) ([]models.Project, int64, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, project models.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	// ListScenes returns a project's scenes in insertion order.
	ListScenes(ctx context.Context, projectID uuid.UUID) ([]models.Scene, error)
	GetScene(ctx context.Context, projectID, sceneID uuid.UUID) (*models.Scene, error)
	CreateScene(ctx context.Context, scene models.Scene) error
	UpdateScene(ctx context.Context, scene models.Scene) error
	UpdateSceneStatus(ctx context.Context, projectID, sceneID uuid.UUID, status models.SceneStatus) error
	DeleteScene(ctx context.Context, projectID, sceneID uuid.UUID) error

	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error)
	CreateLocation(ctx context.Context, location models.Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	Ping(ctx context.Context) error
	Close()
}

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// Page clamps a query's limit and offset to the supported range.
func Page(q models.ProjectQuery) (limit, offset int) {
	return ValidateLimit(q.Limit, DefaultLimit, MaxLimit), ValidateOffset(q.Offset)
}

func ValidateLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
