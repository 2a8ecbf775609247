package stripboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s7scheduling/models"
)

func TestBuild(t *testing.T) {
	projectID := uuid.New()

	a := withStatus(models.StatusScheduled, 120)
	a.SceneNumber = "1A"
	a.ShootDay = intPtr(1)
	b := withStatus(models.StatusCompleted, 90)
	b.SceneNumber = "1B"
	b.ShootDay = intPtr(1)
	c := withStatus(models.StatusUnscheduled, 180)
	c.SceneNumber = "2"
	d := withStatus(models.StatusScheduled, 240)
	d.SceneNumber = "3A"
	d.ShootDay = intPtr(2)

	board := Build(projectID, []models.Scene{a, b, c, d}, Intents{
		OnDelete: func(uuid.UUID) error { return nil },
	})

	assert.Equal(t, projectID, board.ProjectID)
	assert.Equal(t, 4, board.SceneCount)
	assert.False(t, board.Empty)
	assert.Equal(t, "10h 30m", board.Duration.String())
	assert.Equal(t, StatusCounts{Unscheduled: 1, Scheduled: 2, Completed: 1}, board.Statuses)

	require.Len(t, board.Days, 3)
	assert.Equal(t, "Unscheduled", board.Days[0].Title)
	assert.Equal(t, "3h 0m", board.Days[0].Duration.String())
	assert.Equal(t, "Day 1", board.Days[1].Title)
	assert.Equal(t, 2, board.Days[1].SceneCount)
	assert.Equal(t, "3h 30m", board.Days[1].Duration.String())
	assert.Equal(t, "Day 2", board.Days[2].Title)

	for _, day := range board.Days {
		for _, card := range day.Cards {
			assert.Equal(t, []Action{ActionDelete}, card.Actions)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	board := Build(uuid.New(), nil, Intents{})

	assert.True(t, board.Empty)
	assert.Equal(t, 0, board.SceneCount)
	assert.Equal(t, "0h 0m", board.Duration.String())
	assert.NotNil(t, board.Days)
	assert.Empty(t, board.Days)
}
