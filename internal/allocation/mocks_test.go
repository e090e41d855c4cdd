package allocation

import (
	"context"
	"errors"
	"sync"
)

var errStore = errors.New("store unavailable")

// memoryStore is an in-memory Store. Func fields override single calls so
// tests can inject failures.
type memoryStore struct {
	mu sync.Mutex

	projects     []Project
	workers      []Worker
	required     map[uint64][]uint64
	ratings      map[uint64][]Rating
	assigned     map[uint64]bool
	assignments  map[uint64]uint64 // project -> worker
	createCalls  int
	markCalls    int
	ratingsCalls int

	ListUnassignedProjectsFunc func(ctx context.Context) ([]Project, error)
	ListWorkersFunc            func(ctx context.Context, role string) ([]Worker, error)
	ListRequiredSkillsFunc     func(ctx context.Context, projectID uint64) ([]uint64, error)
	ListRatingsFunc            func(ctx context.Context, workerID uint64) ([]Rating, error)
	CreateAssignmentFunc       func(ctx context.Context, workerID, projectID uint64) error
	MarkProjectAssignedFunc    func(ctx context.Context, projectID uint64) error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		required:    map[uint64][]uint64{},
		ratings:     map[uint64][]Rating{},
		assigned:    map[uint64]bool{},
		assignments: map[uint64]uint64{},
	}
}

func hours(h float64) *float64 { return &h }

func (m *memoryStore) addProject(id uint64, effort float64, skills ...uint64) {
	m.projects = append(m.projects, Project{ID: id, Name: "project", EstimatedHours: effort})
	m.required[id] = skills
}

func (m *memoryStore) addWorker(id uint64, goal *float64, ratings map[uint64]int) {
	m.workers = append(m.workers, Worker{ID: id, GoalHours: goal})
	for skillID, rating := range ratings {
		m.ratings[id] = append(m.ratings[id], Rating{SkillID: skillID, Rating: rating})
	}
}

func (m *memoryStore) ListUnassignedProjects(ctx context.Context) ([]Project, error) {
	if m.ListUnassignedProjectsFunc != nil {
		return m.ListUnassignedProjectsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Project
	for _, p := range m.projects {
		if m.assigned[p.ID] {
			continue
		}
		if holder, ok := m.assignments[p.ID]; ok {
			p.HolderID = &holder
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryStore) ListWorkers(ctx context.Context, role string) ([]Worker, error) {
	if m.ListWorkersFunc != nil {
		return m.ListWorkersFunc(ctx, role)
	}
	return m.workers, nil
}

func (m *memoryStore) ListRequiredSkills(ctx context.Context, projectID uint64) ([]uint64, error) {
	if m.ListRequiredSkillsFunc != nil {
		return m.ListRequiredSkillsFunc(ctx, projectID)
	}
	return m.required[projectID], nil
}

func (m *memoryStore) ListRatings(ctx context.Context, workerID uint64) ([]Rating, error) {
	m.mu.Lock()
	m.ratingsCalls++
	m.mu.Unlock()
	if m.ListRatingsFunc != nil {
		return m.ListRatingsFunc(ctx, workerID)
	}
	return m.ratings[workerID], nil
}

func (m *memoryStore) CreateAssignment(ctx context.Context, workerID, projectID uint64) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()
	if m.CreateAssignmentFunc != nil {
		return m.CreateAssignmentFunc(ctx, workerID, projectID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.assigned[projectID] {
		return ErrProjectAlreadyAssigned
	}
	if holder, ok := m.assignments[projectID]; ok {
		if holder == workerID {
			return nil
		}
		return ErrProjectAlreadyAssigned
	}
	m.assignments[projectID] = workerID
	return nil
}

func (m *memoryStore) MarkProjectAssigned(ctx context.Context, projectID uint64) error {
	m.mu.Lock()
	m.markCalls++
	m.mu.Unlock()
	if m.MarkProjectAssignedFunc != nil {
		return m.MarkProjectAssignedFunc(ctx, projectID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.assigned[projectID] {
		return ErrProjectAlreadyAssigned
	}
	m.assigned[projectID] = true
	return nil
}
