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

// ListProjects returns projects newest first, filtered by a case-insensitive
// substring of name or description, with their scenes loaded.
// Uses COUNT(*) OVER() to get the total in the same query.
func (db *DB) ListProjects(ctx context.Context, q models.ProjectQuery) ([]models.Project, int64, error) {
	defer db.timed("ListProjects", zap.String("search", q.Search))()

	pattern, err := searchPattern(q.Search)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := store.Page(q)

	qb := NewQueryBuilder()
	if pattern != "" {
		qb.AddSearch(pattern, columnName, columnDescription)
	}

	// SAFETY: All user input is parameterized. whereClause only contains safe SQL.
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at,
			COUNT(*) OVER() as total_count
		FROM projects
		%s
		ORDER BY created_at DESC, seq DESC
		LIMIT $%d OFFSET $%d
	`, qb.WhereClause(), qb.NextArgNum(), qb.NextArgNum()+1)

	args := append(append([]interface{}{}, qb.Args()...), limit, offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects, total, err := scanProjects(rows)
	if err != nil {
		return nil, 0, err
	}
	if len(projects) == 0 {
		// no row carries total_count past the last page
		if offset > 0 {
			total, err = db.countProjects(ctx, qb)
			if err != nil {
				return nil, 0, err
			}
		}
		return projects, total, nil
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	scenes, err := db.scenesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range projects {
		projects[i].Scenes = scenes[projects[i].ID]
		if projects[i].Scenes == nil {
			projects[i].Scenes = []models.Scene{}
		}
	}

	return projects, total, nil
}

func (db *DB) countProjects(ctx context.Context, qb *QueryBuilder) (int64, error) {
	var total int64
	query := `SELECT COUNT(*) FROM projects ` + qb.WhereClause()
	if err := db.Pool.QueryRow(ctx, query, qb.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return total, nil
}

func (db *DB) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `
		SELECT id, name, description, created_at
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Scenes, err = db.ListScenes(ctx, id)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (db *DB) CreateProject(ctx context.Context, project models.Project) error {
	query := `
		INSERT INTO projects (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := db.Pool.Exec(ctx, query, project.ID, project.Name, project.Description, project.CreatedAt); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	db.log.Info("Created project", zap.String("name", project.Name), zap.Stringer("id", project.ID))
	return nil
}

func (db *DB) DeleteProject(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}

	db.log.Info("Deleted project", zap.Stringer("id", id))
	return nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanProjects reads rows that carry a trailing total_count column.
func scanProjects(rows rowsScanner) ([]models.Project, int64, error) {
	projects := []models.Project{}
	var total int64
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, total, nil
}
