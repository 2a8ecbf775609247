package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"s7scheduling/models"
)

// Memory keeps every collection in process memory. All data is lost when
// the process exits.
type Memory struct {
	mu        sync.RWMutex
	projects  map[uuid.UUID]models.Project
	scenes    map[uuid.UUID][]models.Scene
	locations map[uuid.UUID]models.Location
	// insertion order, used as the tie-break when created_at matches
	projectSeq map[uuid.UUID]int
	nextSeq    int
}

func NewMemory() *Memory {
	return &Memory{
		projects:   make(map[uuid.UUID]models.Project),
		scenes:     make(map[uuid.UUID][]models.Scene),
		locations:  make(map[uuid.UUID]models.Location),
		projectSeq: make(map[uuid.UUID]int),
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) ListProjects(ctx context.Context, q models.ProjectQuery) ([]models.Project, int64, error) {
	term, err := NormalizeSearch(q.Search)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := Page(q)

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := []models.Project{}
	for _, p := range m.projects {
		if MatchesProject(p.Name, p.Description, term) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return m.projectSeq[a.ID] > m.projectSeq[b.ID]
	})

	total := int64(len(matches))
	if offset >= len(matches) {
		return []models.Project{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}

	page := make([]models.Project, 0, end-offset)
	for _, p := range matches[offset:end] {
		p.Scenes = m.scenesLocked(p.ID)
		page = append(page, p)
	}
	return page, total, nil
}

func (m *Memory) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	p.Scenes = m.scenesLocked(id)
	return &p, nil
}

func (m *Memory) CreateProject(ctx context.Context, project models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.projects[project.ID]; exists {
		return fmt.Errorf("project %s already exists", project.ID)
	}
	project.Scenes = nil
	m.projects[project.ID] = project
	m.nextSeq++
	m.projectSeq[project.ID] = m.nextSeq
	return nil
}

func (m *Memory) DeleteProject(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	delete(m.projects, id)
	delete(m.scenes, id)
	delete(m.projectSeq, id)
	return nil
}

func (m *Memory) ListScenes(ctx context.Context, projectID uuid.UUID) ([]models.Scene, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.projects[projectID]; !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return m.scenesLocked(projectID), nil
}

func (m *Memory) GetScene(ctx context.Context, projectID, sceneID uuid.UUID) (*models.Scene, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.sceneIndexLocked(projectID, sceneID)
	if i < 0 {
		return nil, fmt.Errorf("scene %s: %w", sceneID, ErrNotFound)
	}
	scene := m.resolveLocked(m.scenes[projectID][i])
	return &scene, nil
}

func (m *Memory) CreateScene(ctx context.Context, scene models.Scene) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[scene.ProjectID]; !ok {
		return fmt.Errorf("project %s: %w", scene.ProjectID, ErrNotFound)
	}
	if err := m.checkLocationLocked(scene.LocationID); err != nil {
		return err
	}
	if m.sceneIndexLocked(scene.ProjectID, scene.ID) >= 0 {
		return fmt.Errorf("scene %s already exists", scene.ID)
	}

	m.scenes[scene.ProjectID] = append(m.scenes[scene.ProjectID], stored(scene))
	return nil
}

func (m *Memory) UpdateScene(ctx context.Context, scene models.Scene) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.sceneIndexLocked(scene.ProjectID, scene.ID)
	if i < 0 {
		return fmt.Errorf("scene %s: %w", scene.ID, ErrNotFound)
	}
	if err := m.checkLocationLocked(scene.LocationID); err != nil {
		return err
	}
	m.scenes[scene.ProjectID][i] = stored(scene)
	return nil
}

func (m *Memory) UpdateSceneStatus(ctx context.Context, projectID, sceneID uuid.UUID, status models.SceneStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.sceneIndexLocked(projectID, sceneID)
	if i < 0 {
		return fmt.Errorf("scene %s: %w", sceneID, ErrNotFound)
	}
	m.scenes[projectID][i].Status = status
	return nil
}

func (m *Memory) DeleteScene(ctx context.Context, projectID, sceneID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.sceneIndexLocked(projectID, sceneID)
	if i < 0 {
		return fmt.Errorf("scene %s: %w", sceneID, ErrNotFound)
	}
	scenes := m.scenes[projectID]
	m.scenes[projectID] = append(scenes[:i:i], scenes[i+1:]...)
	return nil
}

func (m *Memory) ListLocations(ctx context.Context) ([]models.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locations := make([]models.Location, 0, len(m.locations))
	for _, l := range m.locations {
		locations = append(locations, l)
	}
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})
	return locations, nil
}

func (m *Memory) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.locations[id]
	if !ok {
		return nil, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	return &l, nil
}

func (m *Memory) CreateLocation(ctx context.Context, location models.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.locations[location.ID]; exists {
		return fmt.Errorf("location %s already exists", location.ID)
	}
	m.locations[location.ID] = location
	return nil
}

// DeleteLocation detaches the location from every scene that referenced it.
func (m *Memory) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locations[id]; !ok {
		return fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	delete(m.locations, id)

	for projectID, scenes := range m.scenes {
		for i := range scenes {
			if scenes[i].LocationID != nil && *scenes[i].LocationID == id {
				m.scenes[projectID][i].LocationID = nil
			}
		}
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() {}

// Helper functions

func (m *Memory) sceneIndexLocked(projectID, sceneID uuid.UUID) int {
	for i, s := range m.scenes[projectID] {
		if s.ID == sceneID {
			return i
		}
	}
	return -1
}

func (m *Memory) checkLocationLocked(id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, ok := m.locations[*id]; !ok {
		return fmt.Errorf("%s: %w", *id, ErrLocationNotFound)
	}
	return nil
}

func (m *Memory) scenesLocked(projectID uuid.UUID) []models.Scene {
	src := m.scenes[projectID]
	out := make([]models.Scene, len(src))
	for i, s := range src {
		out[i] = m.resolveLocked(s)
	}
	return out
}

// resolveLocked returns a copy of s that shares no pointers with the store.
func (m *Memory) resolveLocked(s models.Scene) models.Scene {
	s = stored(s)
	if s.LocationID != nil {
		if l, ok := m.locations[*s.LocationID]; ok {
			s.Location = &l
		}
	}
	return s
}

// stored drops the resolved location and copies pointer fields so callers
// cannot reach into the store.
func stored(s models.Scene) models.Scene {
	s.Location = nil
	s.EstimatedMinutes = copyInt(s.EstimatedMinutes)
	s.ShootDay = copyInt(s.ShootDay)
	if s.LocationID != nil {
		id := *s.LocationID
		s.LocationID = &id
	}
	return s
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
