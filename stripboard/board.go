package stripboard

import (
	"github.com/google/uuid"

	"s7scheduling/models"
)

// Intents are the callbacks a board hands to each of its cards. Any of them
// may be nil; the cards then drop the matching actions.
type Intents struct {
	OnEdit         func(scene models.Scene) error
	OnDelete       func(sceneID uuid.UUID) error
	OnStatusChange func(sceneID uuid.UUID, status models.SceneStatus) error
}

// Day is one rendered column of the board.
type Day struct {
	Day         int        `json:"day"`
	Title       string     `json:"title"`
	Unscheduled bool       `json:"unscheduled"`
	SceneCount  int        `json:"scene_count"`
	Duration    Duration   `json:"duration"`
	Cards       []CardView `json:"cards"`
}

// Board is the whole stripboard for one project.
type Board struct {
	ProjectID  uuid.UUID    `json:"project_id"`
	SceneCount int          `json:"scene_count"`
	Duration   Duration     `json:"duration"`
	Statuses   StatusCounts `json:"statuses"`
	Days       []Day        `json:"days"`
	Empty      bool         `json:"empty"`
}

// Build groups scenes by shoot day and renders every scene as a card wired to
// intents.
func Build(projectID uuid.UUID, scenes []models.Scene, intents Intents) Board {
	board := Board{
		ProjectID:  projectID,
		SceneCount: len(scenes),
		Duration:   SplitDuration(TotalMinutes(scenes)),
		Statuses:   CountStatuses(scenes),
		Days:       []Day{},
		Empty:      len(scenes) == 0,
	}

	for _, group := range GroupByShootDay(scenes) {
		day := Day{
			Day:         group.Day,
			Title:       group.Title(),
			Unscheduled: group.Unscheduled(),
			SceneCount:  len(group.Scenes),
			Duration:    SplitDuration(TotalMinutes(group.Scenes)),
			Cards:       make([]CardView, 0, len(group.Scenes)),
		}
		for _, scene := range group.Scenes {
			day.Cards = append(day.Cards, intents.CardFor(scene).View())
		}
		board.Days = append(board.Days, day)
	}

	return board
}

// CardFor builds the card for a single scene with the board's intents.
func (in Intents) CardFor(scene models.Scene) Card {
	return Card{
		Scene:          scene,
		OnEdit:         in.OnEdit,
		OnDelete:       in.OnDelete,
		OnStatusChange: in.OnStatusChange,
	}
}
