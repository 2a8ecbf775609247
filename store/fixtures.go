package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"s7scheduling/models"
)

//go:embed fixtures/seed.yaml
var seedYAML []byte

// Fixtures is the demo data set: shared locations plus projects with scenes.
// Scenes point at locations by key.
type Fixtures struct {
	Locations []LocationFixture `yaml:"locations"`
	Projects  []ProjectFixture  `yaml:"projects"`
}

type LocationFixture struct {
	Key     string              `yaml:"key"`
	Name    string              `yaml:"name"`
	Address string              `yaml:"address"`
	Type    models.LocationType `yaml:"type"`
}

type ProjectFixture struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	CreatedAt   time.Time      `yaml:"created_at"`
	Scenes      []SceneFixture `yaml:"scenes"`
}

type SceneFixture struct {
	SceneNumber      string             `yaml:"scene_number"`
	Description      string             `yaml:"description"`
	EstimatedMinutes *int               `yaml:"estimated_time"`
	ShootDay         *int               `yaml:"shoot_day"`
	Status           models.SceneStatus `yaml:"status"`
	Location         string             `yaml:"location"`
	Notes            string             `yaml:"notes"`
}

// DefaultFixtures parses the embedded seed file.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(seedYAML)
}

// ParseFixtures decodes and checks a fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	keys := make(map[string]bool, len(f.Locations))
	for _, l := range f.Locations {
		if l.Key == "" || l.Name == "" {
			return nil, fmt.Errorf("fixture location needs key and name")
		}
		if !l.Type.Valid() {
			return nil, fmt.Errorf("fixture location %q: unknown type %q", l.Key, l.Type)
		}
		keys[l.Key] = true
	}

	for _, p := range f.Projects {
		for _, s := range p.Scenes {
			if s.Status == "" {
				s.Status = models.StatusUnscheduled
			}
			if !s.Status.Valid() {
				return nil, fmt.Errorf("fixture scene %s/%s: unknown status %q", p.Name, s.SceneNumber, s.Status)
			}
			if s.Location != "" && !keys[s.Location] {
				return nil, fmt.Errorf("fixture scene %s/%s: unknown location %q", p.Name, s.SceneNumber, s.Location)
			}
		}
	}

	return &f, nil
}

// SceneBatcher is implemented by stores that can insert many scenes at once.
type SceneBatcher interface {
	CreateScenes(ctx context.Context, scenes []models.Scene) error
}

func createScenes(ctx context.Context, st Store, scenes []models.Scene) error {
	if b, ok := st.(SceneBatcher); ok {
		return b.CreateScenes(ctx, scenes)
	}
	for _, scene := range scenes {
		if err := st.CreateScene(ctx, scene); err != nil {
			return err
		}
	}
	return nil
}

// Seed writes the fixtures through st with fresh ids. It returns the number
// of projects created.
func Seed(ctx context.Context, st Store, f *Fixtures) (int, error) {
	locationIDs := make(map[string]uuid.UUID, len(f.Locations))
	for _, l := range f.Locations {
		loc := models.Location{
			ID:      uuid.New(),
			Name:    l.Name,
			Address: l.Address,
			Type:    l.Type,
		}
		if err := st.CreateLocation(ctx, loc); err != nil {
			return 0, fmt.Errorf("failed to seed location %q: %w", l.Key, err)
		}
		locationIDs[l.Key] = loc.ID
	}

	for i, p := range f.Projects {
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		project := models.Project{
			ID:          uuid.New(),
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   createdAt,
		}
		if err := st.CreateProject(ctx, project); err != nil {
			return i, fmt.Errorf("failed to seed project %q: %w", p.Name, err)
		}

		scenes := make([]models.Scene, 0, len(p.Scenes))
		for _, s := range p.Scenes {
			status := s.Status
			if status == "" {
				status = models.StatusUnscheduled
			}
			scene := models.Scene{
				ID:               uuid.New(),
				ProjectID:        project.ID,
				SceneNumber:      s.SceneNumber,
				Description:      s.Description,
				EstimatedMinutes: s.EstimatedMinutes,
				ShootDay:         s.ShootDay,
				Status:           status,
				Notes:            s.Notes,
			}
			if s.Location != "" {
				id := locationIDs[s.Location]
				scene.LocationID = &id
			}
			scenes = append(scenes, scene)
		}
		if err := createScenes(ctx, st, scenes); err != nil {
			return i, fmt.Errorf("failed to seed scenes of %q: %w", p.Name, err)
		}
	}

	return len(f.Projects), nil
}
