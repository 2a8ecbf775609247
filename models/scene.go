package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SceneStatus is the scheduling state of a scene. Any status may move to
// any other status.
type SceneStatus string

const (
	StatusUnscheduled SceneStatus = "unscheduled"
	StatusScheduled   SceneStatus = "scheduled"
	StatusInProgress  SceneStatus = "in-progress"
	StatusCompleted   SceneStatus = "completed"
)

// Statuses lists every SceneStatus in board order.
var Statuses = []SceneStatus{
	StatusUnscheduled,
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
}

// ParseSceneStatus rejects anything outside the closed set.
func ParseSceneStatus(s string) (SceneStatus, error) {
	status := SceneStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("unknown scene status %q", s)
	}
	return status, nil
}

func (s SceneStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the human form, e.g. "in progress".
func (s SceneStatus) Label() string {
	return strings.Replace(string(s), "-", " ", 1)
}

type LocationType string

const (
	LocationInterior LocationType = "interior"
	LocationExterior LocationType = "exterior"
)

func (t LocationType) Valid() bool {
	return t == LocationInterior || t == LocationExterior
}

// Location is a shooting location shared by any number of scenes.
type Location struct {
	ID      uuid.UUID    `json:"id" db:"id"`
	Name    string       `json:"name" db:"name"`
	Address string       `json:"address" db:"address"`
	Type    LocationType `json:"type" db:"type"`
}

// Scene is a single filmable unit of a project.
// ShootDay nil means unscheduled. EstimatedMinutes nil means no estimate and
// counts as zero in totals.
type Scene struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	ProjectID        uuid.UUID   `json:"project_id" db:"project_id"`
	SceneNumber      string      `json:"scene_number" db:"scene_number"`
	Description      string      `json:"description" db:"description"`
	EstimatedMinutes *int        `json:"estimated_time,omitempty" db:"estimated_minutes"`
	ShootDay         *int        `json:"shoot_day,omitempty" db:"shoot_day"`
	Status           SceneStatus `json:"status" db:"status"`
	LocationID       *uuid.UUID  `json:"location_id,omitempty" db:"location_id"`
	Location         *Location   `json:"location,omitempty"`
	Notes            string      `json:"notes,omitempty" db:"notes"`
}

// Minutes returns the estimate or zero.
func (s Scene) Minutes() int {
	if s.EstimatedMinutes == nil {
		return 0
	}
	return *s.EstimatedMinutes
}

// Day returns the shoot day, or 0 for unscheduled scenes.
func (s Scene) Day() int {
	if s.ShootDay == nil {
		return 0
	}
	return *s.ShootDay
}

type CreateSceneRequest struct {
	SceneNumber      string     `json:"scene_number"`
	Description      string     `json:"description"`
	EstimatedMinutes *int       `json:"estimated_time"`
	ShootDay         *int       `json:"shoot_day"`
	LocationID       *uuid.UUID `json:"location_id"`
	Notes            string     `json:"notes"`
}

// UpdateSceneRequest is a partial update: nil fields are left untouched.
// ClearEstimate, ClearShootDay and ClearLocation unset a field explicitly,
// since a nil pointer already means "keep".
type UpdateSceneRequest struct {
	SceneNumber      *string      `json:"scene_number"`
	Description      *string      `json:"description"`
	EstimatedMinutes *int         `json:"estimated_time"`
	ClearEstimate    bool         `json:"clear_estimated_time"`
	ShootDay         *int         `json:"shoot_day"`
	ClearShootDay    bool         `json:"clear_shoot_day"`
	LocationID       *uuid.UUID   `json:"location_id"`
	ClearLocation    bool         `json:"clear_location"`
	Notes            *string      `json:"notes"`
	Status           *SceneStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateLocationRequest struct {
	Name    string       `json:"name" binding:"required,max=255"`
	Address string       `json:"address" binding:"max=500"`
	Type    LocationType `json:"type" binding:"required"`
}
