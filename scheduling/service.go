// Package scheduling validates and applies every change to projects, scenes
// and locations, and renders the read models built from them.
package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"s7scheduling/cache"
	"s7scheduling/logging"
	"s7scheduling/models"
	"s7scheduling/store"
	"s7scheduling/stripboard"
)

// Service is the only writer of its store. Validation failures never reach
// the store.
type Service struct {
	store  store.Store
	boards *cache.Stripboards
	log    *zap.Logger
	now    func() time.Time
}

// New wires a service to st. boards may be nil to disable board caching.
func New(st store.Store, boards *cache.Stripboards, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		boards: boards,
		log:    logger.Named("scheduling"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ProjectSummary is a project together with the stats shown on its card.
type ProjectSummary struct {
	models.Project
	Stats stripboard.ProjectStats `json:"stats"`
}

type ProjectPage struct {
	Projects []ProjectSummary `json:"projects"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	HasMore  bool             `json:"has_more"`
}

func summarize(p models.Project) ProjectSummary {
	if p.Scenes == nil {
		p.Scenes = []models.Scene{}
	}
	return ProjectSummary{Project: p, Stats: stripboard.StatsFor(p.Scenes)}
}

func (s *Service) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, *Notice, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, invalid("name", "Project name is required")
	}
	if tooLong(name, MaxNameLength) {
		return nil, nil, invalid("name", fmt.Sprintf("Project name must be at most %d characters", MaxNameLength))
	}

	project := models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now(),
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger(ctx).Info("Project created", zap.Stringer("project_id", project.ID), zap.String("name", project.Name))
	project.Scenes = []models.Scene{}
	return &project, success("Project created successfully"), nil
}

func (s *Service) ListProjects(ctx context.Context, q models.ProjectQuery) (*ProjectPage, error) {
	if _, err := store.NormalizeSearch(q.Search); err != nil {
		return nil, invalid("search", err.Error())
	}

	projects, total, err := s.store.ListProjects(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	limit, offset := store.Page(q)
	page := &ProjectPage{
		Projects: make([]ProjectSummary, 0, len(projects)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		HasMore:  int64(offset+len(projects)) < total,
	}
	for _, p := range projects {
		page.Projects = append(page.Projects, summarize(p))
	}
	return page, nil
}

func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*ProjectSummary, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := summarize(*project)
	return &summary, nil
}

// DeleteProject removes a project and all of its scenes.
func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) (*Notice, error) {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	s.logger(ctx).Info("Project deleted", zap.Stringer("project_id", id))
	return success("Project deleted successfully"), nil
}

// Dashboard totals every project, walking all pages.
func (s *Service) Dashboard(ctx context.Context) (stripboard.DashboardTotals, error) {
	var all []models.Project
	q := models.ProjectQuery{Limit: store.MaxLimit}
	for {
		projects, total, err := s.store.ListProjects(ctx, q)
		if err != nil {
			return stripboard.DashboardTotals{}, fmt.Errorf("failed to load dashboard: %w", err)
		}
		all = append(all, projects...)
		q.Offset += len(projects)
		if len(projects) == 0 || int64(q.Offset) >= total {
			break
		}
	}
	return stripboard.Totals(all), nil
}

// Ping checks the store and, when configured, the board cache.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := s.boards.Ping(ctx); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

func (s *Service) logger(ctx context.Context) *zap.Logger {
	return logging.ForRequest(ctx, s.log)
}

// invalidate drops cached boards. A cache failure only costs freshness until
// the entry expires, so it is logged and not returned.
func (s *Service) invalidate(ctx context.Context, projectID uuid.UUID) {
	if err := s.boards.Invalidate(ctx, projectID); err != nil {
		s.logger(ctx).Warn("Failed to invalidate stripboard", zap.Stringer("project_id", projectID), zap.Error(err))
	}
}
