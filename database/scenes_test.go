package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s7scheduling/models"
	"s7scheduling/store"
)

func newScene(projectID uuid.UUID, number string, minutes int) models.Scene {
	return models.Scene{
		ID:               uuid.New(),
		ProjectID:        projectID,
		SceneNumber:      number,
		Description:      "scene " + number,
		EstimatedMinutes: &minutes,
		Status:           models.StatusUnscheduled,
	}
}

func TestCreateScene(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	project := createProject(t, db, "Pilot", "", time.Now().UTC())

	scene := newScene(project.ID, "1", 45)
	scene.Notes = "Golden hour"
	require.NoError(t, db.CreateScene(ctx, scene))

	got, err := db.GetScene(ctx, project.ID, scene.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", got.SceneNumber)
	require.NotNil(t, got.EstimatedMinutes)
	assert.Equal(t, 45, *got.EstimatedMinutes)
	assert.Nil(t, got.ShootDay)
	assert.Equal(t, models.StatusUnscheduled, got.Status)
	assert.Equal(t, "Golden hour", got.Notes)
	assert.Nil(t, got.Location)
}

func TestCreateScene_UnknownProject(t *testing.T) {
	db := integrationDB(t)

	err := db.CreateScene(context.Background(), newScene(uuid.New(), "1", 10))
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrLocationNotFound)
}

func TestCreateScenes_Batch(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	project := createProject(t, db, "Pilot", "", time.Now().UTC())

	scenes := []models.Scene{
		newScene(project.ID, "10", 30),
		newScene(project.ID, "2", 60),
		newScene(project.ID, "1A", 90),
	}
	require.NoError(t, db.CreateScenes(ctx, scenes))
	require.NoError(t, db.CreateScenes(ctx, nil))

	listed, err := db.ListScenes(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "10", listed[0].SceneNumber)
	assert.Equal(t, "2", listed[1].SceneNumber)
	assert.Equal(t, "1A", listed[2].SceneNumber)

	dup := []models.Scene{newScene(project.ID, "4", 1), scenes[0]}
	err = db.CreateScenes(ctx, dup)
	var batchErr *BatchInsertError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.FailedIndex)
	assert.Equal(t, 2, batchErr.TotalScenes)
}

func TestUpdateSceneAndLocation(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	project := createProject(t, db, "Pilot", "", time.Now().UTC())

	location := models.Location{ID: uuid.New(), Name: "Desmond Mansion", Address: "Beverly Hills", Type: models.LocationInterior}
	require.NoError(t, db.CreateLocation(ctx, location))

	scene := newScene(project.ID, "1", 45)
	require.NoError(t, db.CreateScene(ctx, scene))

	day := 2
	scene.ShootDay = &day
	scene.Status = models.StatusScheduled
	scene.LocationID = &location.ID
	require.NoError(t, db.UpdateScene(ctx, scene))

	got, err := db.GetScene(ctx, project.ID, scene.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ShootDay)
	assert.Equal(t, 2, *got.ShootDay)
	assert.Equal(t, models.StatusScheduled, got.Status)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Desmond Mansion", got.Location.Name)
	assert.Equal(t, models.LocationInterior, got.Location.Type)

	require.NoError(t, db.DeleteLocation(ctx, location.ID))

	got, err = db.GetScene(ctx, project.ID, scene.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LocationID)
	assert.Nil(t, got.Location)

	missing := uuid.New()
	scene.LocationID = &missing
	err = db.UpdateScene(ctx, scene)
	assert.ErrorIs(t, err, store.ErrLocationNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateSceneStatus(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	project := createProject(t, db, "Pilot", "", time.Now().UTC())
	scene := newScene(project.ID, "1", 45)
	require.NoError(t, db.CreateScene(ctx, scene))

	require.NoError(t, db.UpdateSceneStatus(ctx, project.ID, scene.ID, models.StatusCompleted))

	got, err := db.GetScene(ctx, project.ID, scene.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	err = db.UpdateSceneStatus(ctx, project.ID, uuid.New(), models.StatusScheduled)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteScene(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	project := createProject(t, db, "Pilot", "", time.Now().UTC())
	scene := newScene(project.ID, "1", 45)
	require.NoError(t, db.CreateScene(ctx, scene))

	require.NoError(t, db.DeleteScene(ctx, project.ID, scene.ID))
	assert.ErrorIs(t, db.DeleteScene(ctx, project.ID, scene.ID), store.ErrNotFound)

	scenes, err := db.ListScenes(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestDeleteProject_CascadesScenes(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	project := createProject(t, db, "Pilot", "", time.Now().UTC())
	require.NoError(t, db.CreateScene(ctx, newScene(project.ID, "1", 45)))

	require.NoError(t, db.DeleteProject(ctx, project.ID))

	var count int
	require.NoError(t, db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM scenes`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSeed_Postgres(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()

	fixtures, err := store.DefaultFixtures()
	require.NoError(t, err)

	n, err := store.Seed(ctx, db, fixtures)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	projects, total, err := db.ListProjects(ctx, models.ProjectQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "The Digital Detective", projects[0].Name)
	assert.Len(t, projects[1].Scenes, 4)
	require.NotNil(t, projects[1].Scenes[0].Location)
}
