package stripboard

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"s7scheduling/models"
)

// Action is an intent a card can forward.
type Action string

const (
	ActionEdit          Action = "edit"
	ActionMarkScheduled Action = "mark-scheduled"
	ActionMarkCompleted Action = "mark-completed"
	ActionDelete        Action = "delete"
)

var (
	ErrUnknownAction = errors.New("unknown scene action")
	ErrNoHandler     = errors.New("scene action not available")
)

// ParseAction rejects names outside the four card actions.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionEdit, ActionMarkScheduled, ActionMarkCompleted, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Card presents one scene and forwards intents to whichever callbacks are
// set. It holds no state of its own and never modifies Scene.
type Card struct {
	Scene          models.Scene
	OnEdit         func(scene models.Scene) error
	OnDelete       func(sceneID uuid.UUID) error
	OnStatusChange func(sceneID uuid.UUID, status models.SceneStatus) error
}

// CardView is the rendered form of a Card.
type CardView struct {
	SceneID     uuid.UUID          `json:"scene_id"`
	Title       string             `json:"title"`
	SceneNumber string             `json:"scene_number"`
	Status      models.SceneStatus `json:"status"`
	StatusLabel string             `json:"status_label"`
	Description string             `json:"description"`
	Runtime     string             `json:"runtime,omitempty"`
	Location    string             `json:"location,omitempty"`
	ShootDay    string             `json:"shoot_day,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Actions     []Action           `json:"actions"`
}

// Actions lists the intents that have a callback behind them.
func (c Card) Actions() []Action {
	actions := []Action{}
	if c.OnEdit != nil {
		actions = append(actions, ActionEdit)
	}
	if c.OnStatusChange != nil {
		actions = append(actions, ActionMarkScheduled, ActionMarkCompleted)
	}
	if c.OnDelete != nil {
		actions = append(actions, ActionDelete)
	}
	return actions
}

func (c Card) View() CardView {
	scene := c.Scene
	view := CardView{
		SceneID:     scene.ID,
		Title:       "Scene " + scene.SceneNumber,
		SceneNumber: scene.SceneNumber,
		Status:      scene.Status,
		StatusLabel: scene.Status.Label(),
		Description: scene.Description,
		Notes:       scene.Notes,
		Actions:     c.Actions(),
	}
	if scene.EstimatedMinutes != nil {
		view.Runtime = fmt.Sprintf("%dmin", *scene.EstimatedMinutes)
	}
	if scene.Location != nil {
		view.Location = scene.Location.Name
	}
	if scene.ShootDay != nil {
		view.ShootDay = fmt.Sprintf("Day %d", *scene.ShootDay)
	}
	return view
}

// Edit, Delete, MarkScheduled and MarkCompleted are no-ops when the matching
// callback is nil.

func (c Card) Edit() error {
	if c.OnEdit == nil {
		return nil
	}
	return c.OnEdit(c.Scene)
}

func (c Card) Delete() error {
	if c.OnDelete == nil {
		return nil
	}
	return c.OnDelete(c.Scene.ID)
}

func (c Card) MarkScheduled() error {
	return c.changeStatus(models.StatusScheduled)
}

func (c Card) MarkCompleted() error {
	return c.changeStatus(models.StatusCompleted)
}

func (c Card) changeStatus(status models.SceneStatus) error {
	if c.OnStatusChange == nil {
		return nil
	}
	return c.OnStatusChange(c.Scene.ID, status)
}

// Dispatch runs an action by name. Unlike the direct methods it reports
// ErrNoHandler when the action has no callback, so callers can tell a
// missing affordance from a successful no-op.
func (c Card) Dispatch(action Action) error {
	switch action {
	case ActionEdit:
		if c.OnEdit == nil {
			return ErrNoHandler
		}
		return c.Edit()
	case ActionMarkScheduled, ActionMarkCompleted:
		if c.OnStatusChange == nil {
			return ErrNoHandler
		}
		if action == ActionMarkScheduled {
			return c.MarkScheduled()
		}
		return c.MarkCompleted()
	case ActionDelete:
		if c.OnDelete == nil {
			return ErrNoHandler
		}
		return c.Delete()
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
