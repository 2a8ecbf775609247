package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"s7scheduling/cache"
	"s7scheduling/models"
	"s7scheduling/store"
	"s7scheduling/stripboard"
)

func (s *Service) ListScenes(ctx context.Context, projectID uuid.UUID) ([]models.Scene, error) {
	return s.store.ListScenes(ctx, projectID)
}

func (s *Service) CreateScene(ctx context.Context, projectID uuid.UUID, req models.CreateSceneRequest) (*models.Scene, *Notice, error) {
	scene := models.Scene{
		ID:               uuid.New(),
		ProjectID:        projectID,
		SceneNumber:      strings.TrimSpace(req.SceneNumber),
		Description:      strings.TrimSpace(req.Description),
		EstimatedMinutes: req.EstimatedMinutes,
		ShootDay:         req.ShootDay,
		Status:           models.StatusUnscheduled,
		LocationID:       req.LocationID,
		Notes:            strings.TrimSpace(req.Notes),
	}
	if err := s.validateScene(ctx, scene); err != nil {
		return nil, nil, err
	}

	if err := s.store.CreateScene(ctx, scene); err != nil {
		return nil, nil, locationGone(err)
	}
	s.invalidate(ctx, projectID)

	s.logger(ctx).Info("Scene added",
		zap.Stringer("project_id", projectID),
		zap.Stringer("scene_id", scene.ID),
		zap.String("scene_number", scene.SceneNumber),
	)
	return s.reload(ctx, scene, "Scene added successfully")
}

// UpdateScene applies the non-nil fields of req and validates the result as
// a whole.
func (s *Service) UpdateScene(ctx context.Context, projectID, sceneID uuid.UUID, req models.UpdateSceneRequest) (*models.Scene, *Notice, error) {
	current, err := s.store.GetScene(ctx, projectID, sceneID)
	if err != nil {
		return nil, nil, err
	}

	scene := *current
	scene.Location = nil
	if req.SceneNumber != nil {
		scene.SceneNumber = strings.TrimSpace(*req.SceneNumber)
	}
	if req.Description != nil {
		scene.Description = strings.TrimSpace(*req.Description)
	}
	switch {
	case req.ClearEstimate:
		scene.EstimatedMinutes = nil
	case req.EstimatedMinutes != nil:
		scene.EstimatedMinutes = req.EstimatedMinutes
	}
	switch {
	case req.ClearShootDay:
		scene.ShootDay = nil
	case req.ShootDay != nil:
		scene.ShootDay = req.ShootDay
	}
	switch {
	case req.ClearLocation:
		scene.LocationID = nil
	case req.LocationID != nil:
		scene.LocationID = req.LocationID
	}
	if req.Notes != nil {
		scene.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, nil, invalid("status", fmt.Sprintf("Unknown scene status %q", *req.Status))
		}
		scene.Status = *req.Status
	}

	if err := s.validateScene(ctx, scene); err != nil {
		return nil, nil, err
	}
	if err := s.store.UpdateScene(ctx, scene); err != nil {
		return nil, nil, locationGone(err)
	}
	s.invalidate(ctx, projectID)

	s.logger(ctx).Info("Scene updated", zap.Stringer("project_id", projectID), zap.Stringer("scene_id", sceneID))
	return s.reload(ctx, scene, "Scene updated successfully")
}

// ChangeSceneStatus moves a scene to any status. There is no transition
// order.
func (s *Service) ChangeSceneStatus(ctx context.Context, projectID, sceneID uuid.UUID, status models.SceneStatus) (*models.Scene, *Notice, error) {
	if !status.Valid() {
		return nil, nil, invalid("status", fmt.Sprintf("Unknown scene status %q", status))
	}

	if err := s.store.UpdateSceneStatus(ctx, projectID, sceneID, status); err != nil {
		return nil, nil, err
	}
	s.invalidate(ctx, projectID)

	s.logger(ctx).Info("Scene status changed",
		zap.Stringer("project_id", projectID),
		zap.Stringer("scene_id", sceneID),
		zap.String("status", string(status)),
	)
	scene, err := s.store.GetScene(ctx, projectID, sceneID)
	if err != nil {
		return nil, nil, err
	}
	return scene, success("Scene status updated to " + status.Label()), nil
}

func (s *Service) DeleteScene(ctx context.Context, projectID, sceneID uuid.UUID) (*Notice, error) {
	if err := s.store.DeleteScene(ctx, projectID, sceneID); err != nil {
		return nil, err
	}
	s.invalidate(ctx, projectID)

	s.logger(ctx).Info("Scene deleted", zap.Stringer("project_id", projectID), zap.Stringer("scene_id", sceneID))
	return success("Scene deleted successfully"), nil
}

func (s *Service) validateScene(ctx context.Context, scene models.Scene) error {
	if scene.SceneNumber == "" || scene.Description == "" {
		return invalid("scene_number", "Scene number and description are required")
	}
	if tooLong(scene.SceneNumber, MaxSceneNumberLength) {
		return invalid("scene_number", fmt.Sprintf("Scene number must be at most %d characters", MaxSceneNumberLength))
	}
	if m := scene.EstimatedMinutes; m != nil {
		if *m < 0 {
			return invalid("estimated_time", "Estimated time cannot be negative")
		}
		if int64(*m) > MaxMinutes {
			return invalid("estimated_time", "Estimated time is too large")
		}
	}
	if d := scene.ShootDay; d != nil {
		if *d <= 0 {
			return invalid("shoot_day", "Shoot day must be a positive number")
		}
		if int64(*d) > MaxShootDay {
			return invalid("shoot_day", "Shoot day is too large")
		}
	}
	if scene.LocationID != nil {
		if _, err := s.store.GetLocation(ctx, *scene.LocationID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return invalid("location_id", "Location not found")
			}
			return fmt.Errorf("failed to check location: %w", err)
		}
	}
	return nil
}

// locationGone reports a location deleted after validateScene saw it the
// same way validateScene would have.
func locationGone(err error) error {
	if errors.Is(err, store.ErrLocationNotFound) {
		return invalid("location_id", "Location not found")
	}
	return err
}

// reload reads the stored scene back so the response carries its resolved
// location.
func (s *Service) reload(ctx context.Context, scene models.Scene, notice string) (*models.Scene, *Notice, error) {
	stored, err := s.store.GetScene(ctx, scene.ProjectID, scene.ID)
	if err != nil {
		return nil, nil, err
	}
	return stored, success(notice), nil
}

// Stripboard renders a project's board. Writers get cards wired to the
// scene actions; readers get the same board with no actions.
func (s *Service) Stripboard(ctx context.Context, projectID uuid.UUID, writer bool) (*stripboard.Board, error) {
	audience := cache.Reader
	if writer {
		audience = cache.Writer
	}

	// gen is read before the store so a concurrent mutation retires
	// whatever this call caches.
	board, gen, ok, err := s.boards.Get(ctx, projectID, audience)
	cacheable := err == nil
	if err != nil {
		s.logger(ctx).Warn("Failed to read cached stripboard", zap.Stringer("project_id", projectID), zap.Error(err))
	}
	if ok {
		return board, nil
	}

	scenes, err := s.store.ListScenes(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var intents stripboard.Intents
	if writer {
		intents = s.intents(ctx, projectID, &ActionResult{})
	}
	built := stripboard.Build(projectID, scenes, intents)

	if cacheable {
		if err := s.boards.Set(ctx, built, audience, gen); err != nil {
			s.logger(ctx).Warn("Failed to cache stripboard", zap.Stringer("project_id", projectID), zap.Error(err))
		}
	}
	return &built, nil
}

// ActionResult is what a dispatched card action produced. Scene is nil after
// a delete.
type ActionResult struct {
	Action stripboard.Action `json:"action"`
	Scene  *models.Scene     `json:"scene,omitempty"`
	Notice *Notice           `json:"notice,omitempty"`
}

// DispatchAction runs a card action against a stored scene, the same way a
// click on the card would.
func (s *Service) DispatchAction(ctx context.Context, projectID, sceneID uuid.UUID, name string) (*ActionResult, error) {
	action, err := stripboard.ParseAction(name)
	if err != nil {
		return nil, err
	}

	scene, err := s.store.GetScene(ctx, projectID, sceneID)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Action: action, Scene: scene}
	if err := s.intents(ctx, projectID, result).CardFor(*scene).Dispatch(action); err != nil {
		return nil, err
	}
	return result, nil
}

// intents binds card callbacks to this service. Edit has nothing to change
// on its own; it returns the scene so the caller can open it for editing.
func (s *Service) intents(ctx context.Context, projectID uuid.UUID, result *ActionResult) stripboard.Intents {
	return stripboard.Intents{
		OnEdit: func(scene models.Scene) error {
			result.Scene = &scene
			return nil
		},
		OnStatusChange: func(sceneID uuid.UUID, status models.SceneStatus) error {
			scene, notice, err := s.ChangeSceneStatus(ctx, projectID, sceneID, status)
			if err != nil {
				return err
			}
			result.Scene, result.Notice = scene, notice
			return nil
		},
		OnDelete: func(sceneID uuid.UUID) error {
			notice, err := s.DeleteScene(ctx, projectID, sceneID)
			if err != nil {
				return err
			}
			result.Scene, result.Notice = nil, notice
			return nil
		},
	}
}
