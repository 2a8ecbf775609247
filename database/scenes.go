package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"s7scheduling/models"
	"s7scheduling/store"
)

const (
	pgForeignKeyViolation = "23503"
	sceneLocationFK       = "scenes_location_id_fkey"
)

// BatchInsertError indicates which scene failed during a batch insert.
// Contains the index of the failed scene and the total batch size for debugging.
type BatchInsertError struct {
	FailedIndex int
	TotalScenes int
	Err         error
}

func (e *BatchInsertError) Error() string {
	return fmt.Sprintf("failed to insert scene at index %d/%d: %v", e.FailedIndex, e.TotalScenes, e.Err)
}

func (e *BatchInsertError) Unwrap() error {
	return e.Err
}

const selectScenes = `
	SELECT s.id, s.project_id, s.scene_number, s.description,
		s.estimated_minutes, s.shoot_day, s.status, s.location_id, s.notes,
		l.name, l.address, l.type
	FROM scenes s
	LEFT JOIN locations l ON l.id = s.location_id
`

const insertScene = `
	INSERT INTO scenes (id, project_id, scene_number, description,
		estimated_minutes, shoot_day, status, location_id, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// ListScenes returns a project's scenes in insertion order.
func (db *DB) ListScenes(ctx context.Context, projectID uuid.UUID) ([]models.Scene, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, projectID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project %s: %w", projectID, store.ErrNotFound)
	}

	qb := NewQueryBuilder()
	qb.AddCondition(sceneColumn(columnProjectID), projectID)

	rows, err := db.Pool.Query(ctx, selectScenes+qb.WhereClause()+` ORDER BY s.seq`, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	defer rows.Close()

	return scanScenes(rows)
}

// scenesFor loads the scenes of several projects in one query, keyed by
// project id.
func (db *DB) scenesFor(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID][]models.Scene, error) {
	qb := NewQueryBuilder()
	qb.AddAny(sceneColumn(columnProjectID), projectIDs)

	rows, err := db.Pool.Query(ctx, selectScenes+qb.WhereClause()+` ORDER BY s.seq`, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	defer rows.Close()

	scenes, err := scanScenes(rows)
	if err != nil {
		return nil, err
	}

	byProject := make(map[uuid.UUID][]models.Scene, len(projectIDs))
	for _, s := range scenes {
		byProject[s.ProjectID] = append(byProject[s.ProjectID], s)
	}
	return byProject, nil
}

func (db *DB) GetScene(ctx context.Context, projectID, sceneID uuid.UUID) (*models.Scene, error) {
	qb := NewQueryBuilder()
	qb.AddCondition(sceneColumn(columnID), sceneID)
	qb.AddCondition(sceneColumn(columnProjectID), projectID)

	row := db.Pool.QueryRow(ctx, selectScenes+qb.WhereClause(), qb.Args()...)

	scene, err := scanScene(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("scene %s: %w", sceneID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}
	return scene, nil
}

func (db *DB) CreateScene(ctx context.Context, scene models.Scene) error {
	_, err := db.Pool.Exec(ctx, insertScene, sceneArgs(scene)...)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", notFoundOnForeignKey(err))
	}

	db.log.Info("Created scene",
		zap.Stringer("project_id", scene.ProjectID),
		zap.String("scene_number", scene.SceneNumber))
	return nil
}

// CreateScenes inserts scenes in a single round-trip using pgx batching.
// If any scene fails, returns BatchInsertError indicating which one.
// Empty slice is a no-op and returns nil.
func (db *DB) CreateScenes(ctx context.Context, scenes []models.Scene) error {
	if len(scenes) == 0 {
		return nil
	}

	defer db.timed("CreateScenes", zap.Int("count", len(scenes)))()

	batch := &pgx.Batch{}
	for _, scene := range scenes {
		batch.Queue(insertScene, sceneArgs(scene)...)
	}

	results := db.Pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for i := 0; i < len(scenes); i++ {
		_, err := results.Exec()
		if err != nil {
			return &BatchInsertError{
				FailedIndex: i,
				TotalScenes: len(scenes),
				Err:         notFoundOnForeignKey(err),
			}
		}
	}

	return nil
}

func (db *DB) UpdateScene(ctx context.Context, scene models.Scene) error {
	query := `
		UPDATE scenes
		SET scene_number = $3, description = $4, estimated_minutes = $5,
			shoot_day = $6, status = $7, location_id = $8, notes = $9
		WHERE id = $1 AND project_id = $2
	`

	result, err := db.Pool.Exec(ctx, query,
		scene.ID, scene.ProjectID, scene.SceneNumber, scene.Description,
		scene.EstimatedMinutes, scene.ShootDay, string(scene.Status), scene.LocationID, scene.Notes)
	if err != nil {
		return fmt.Errorf("failed to update scene: %w", notFoundOnForeignKey(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scene %s: %w", scene.ID, store.ErrNotFound)
	}
	return nil
}

func (db *DB) UpdateSceneStatus(ctx context.Context, projectID, sceneID uuid.UUID, status models.SceneStatus) error {
	query := `UPDATE scenes SET status = $3 WHERE id = $1 AND project_id = $2`

	result, err := db.Pool.Exec(ctx, query, sceneID, projectID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update scene status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scene %s: %w", sceneID, store.ErrNotFound)
	}
	return nil
}

func (db *DB) DeleteScene(ctx context.Context, projectID, sceneID uuid.UUID) error {
	query := `DELETE FROM scenes WHERE id = $1 AND project_id = $2`

	result, err := db.Pool.Exec(ctx, query, sceneID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scene %s: %w", sceneID, store.ErrNotFound)
	}

	db.log.Info("Deleted scene", zap.Stringer("id", sceneID))
	return nil
}

// Helper functions

// sceneColumn qualifies a column with the scenes alias used by selectScenes.
func sceneColumn(column string) string {
	return "s." + column
}

func sceneArgs(s models.Scene) []interface{} {
	return []interface{}{
		s.ID, s.ProjectID, s.SceneNumber, s.Description,
		s.EstimatedMinutes, s.ShootDay, string(s.Status), s.LocationID, s.Notes,
	}
}

// notFoundOnForeignKey maps a missing project reference to store.ErrNotFound
// and a missing location reference to store.ErrLocationNotFound.
func notFoundOnForeignKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		if pgErr.ConstraintName == sceneLocationFK {
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, store.ErrLocationNotFound)
		}
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, store.ErrNotFound)
	}
	return err
}

func scanScene(row rowScanner) (*models.Scene, error) {
	var (
		scene      models.Scene
		status     string
		locName    *string
		locAddress *string
		locType    *string
	)
	err := row.Scan(
		&scene.ID, &scene.ProjectID, &scene.SceneNumber, &scene.Description,
		&scene.EstimatedMinutes, &scene.ShootDay, &status, &scene.LocationID, &scene.Notes,
		&locName, &locAddress, &locType,
	)
	if err != nil {
		return nil, err
	}

	scene.Status = models.SceneStatus(status)
	if scene.LocationID != nil && locName != nil {
		scene.Location = &models.Location{
			ID:   *scene.LocationID,
			Name: *locName,
		}
		if locAddress != nil {
			scene.Location.Address = *locAddress
		}
		if locType != nil {
			scene.Location.Type = models.LocationType(*locType)
		}
	}
	return &scene, nil
}

func scanScenes(rows rowsScanner) ([]models.Scene, error) {
	scenes := []models.Scene{}
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scene: %w", err)
		}
		scenes = append(scenes, *scene)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenes: %w", err)
	}

	return scenes, nil
}
