package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apper-canvas/flowforge/internal/model"
)

// Memory is the in-process Store. Collections live in insertion-ordered
// slices guarded by a RWMutex, so concurrent fronts (HTTP handlers, TUI)
// see each mutation as atomic. The optional latency runs before the
// mutation and honors context cancellation; once the lock is taken the
// operation completes.
type Memory struct {
	mu       sync.RWMutex
	tasks    []model.Task
	projects []model.Project
	users    []model.User
	latency  Latency
}

// MemoryOption configures a Memory store
type MemoryOption func(*Memory)

// WithLatency enables simulated per-operation delays
func WithLatency(l Latency) MemoryOption {
	return func(m *Memory) { m.latency = l }
}

// NewMemory returns an empty in-memory store with no simulated latency
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Seed installs records verbatim, keeping ids and timestamps
func (m *Memory) Seed(ctx context.Context, tasks []model.Task, projects []model.Project, users []model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tasks {
		m.tasks = append(m.tasks, t.Clone())
	}
	m.projects = append(m.projects, projects...)
	m.users = append(m.users, users...)
	return nil
}

// Close is a no-op; Memory holds no external resources
func (m *Memory) Close() error { return nil }

// Tasks

func (m *Memory) ListTasks(ctx context.Context) ([]model.Task, error) {
	if err := m.delay(ctx, m.latency.List); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Task, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

func (m *Memory) GetTask(ctx context.Context, id string) (model.Task, error) {
	if err := m.delay(ctx, m.latency.Get); err != nil {
		return model.Task{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func (m *Memory) CreateTask(ctx context.Context, draft model.Task) (model.Task, error) {
	if err := m.delay(ctx, m.latency.Create); err != nil {
		return model.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	t := draft.Clone()
	t.ID = NewID(now)
	t.CreatedAt = now
	if t.Status == model.StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.Subtasks = []model.Subtask{}

	m.tasks = append(m.tasks, t)
	return t.Clone(), nil
}

func (m *Memory) UpdateTask(ctx context.Context, id string, patch TaskPatch) (model.Task, error) {
	if err := m.delay(ctx, m.latency.Update); err != nil {
		return model.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tasks {
		if t.ID != id {
			continue
		}
		updated := applyTaskPatch(t.Clone(), patch)
		// Re-derive CompletedAt from the transition, not the caller's word.
		switch {
		case updated.Status != model.StatusCompleted:
			updated.CompletedAt = nil
		case t.Status != model.StatusCompleted:
			now := time.Now()
			updated.CompletedAt = &now
		}
		m.tasks[i] = updated
		return updated.Clone(), nil
	}
	return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func (m *Memory) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	if err := m.delay(ctx, m.latency.Delete); err != nil {
		return model.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return t.Clone(), nil
		}
	}
	return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

func applyTaskPatch(t model.Task, p TaskPatch) model.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), p.Tags...)
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]model.Subtask(nil), p.Subtasks...)
	}
	return t
}

// Projects

func (m *Memory) ListProjects(ctx context.Context) ([]model.Project, error) {
	if err := m.delay(ctx, m.latency.List); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Project, len(m.projects))
	copy(out, m.projects)
	return out, nil
}

func (m *Memory) GetProject(ctx context.Context, id string) (model.Project, error) {
	if err := m.delay(ctx, m.latency.Get); err != nil {
		return model.Project{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

func (m *Memory) CreateProject(ctx context.Context, draft model.Project) (model.Project, error) {
	if err := m.delay(ctx, m.latency.Create); err != nil {
		return model.Project{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p := draft
	p.ID = NewID(time.Now())
	if p.Color == "" {
		p.Color = model.DefaultProjectColor
	}
	p.TaskCount = 0
	p.CompletedCount = 0

	m.projects = append(m.projects, p)
	return p, nil
}

func (m *Memory) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (model.Project, error) {
	if err := m.delay(ctx, m.latency.Update); err != nil {
		return model.Project{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.projects {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Color != nil {
			p.Color = *patch.Color
		}
		if patch.TaskCount != nil {
			p.TaskCount = *patch.TaskCount
		}
		if patch.CompletedCount != nil {
			p.CompletedCount = *patch.CompletedCount
		}
		m.projects[i] = p
		return p, nil
	}
	return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

func (m *Memory) DeleteProject(ctx context.Context, id string) (model.Project, error) {
	if err := m.delay(ctx, m.latency.Delete); err != nil {
		return model.Project{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.projects {
		if p.ID == id {
			// No cascade: tasks keep their dangling reference and
			// resolve to the default display.
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// Users

func (m *Memory) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := m.delay(ctx, m.latency.List); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *Memory) GetUser(ctx context.Context, id string) (model.User, error) {
	if err := m.delay(ctx, m.latency.Get); err != nil {
		return model.User{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (m *Memory) CreateUser(ctx context.Context, draft model.User) (model.User, error) {
	if err := m.delay(ctx, m.latency.Create); err != nil {
		return model.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u := draft
	u.ID = NewID(time.Now())
	m.users = append(m.users, u)
	return u, nil
}

func (m *Memory) UpdateUser(ctx context.Context, id string, patch UserPatch) (model.User, error) {
	if err := m.delay(ctx, m.latency.Update); err != nil {
		return model.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID != id {
			continue
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Avatar != nil {
			u.Avatar = *patch.Avatar
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		m.users[i] = u
		return u, nil
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (m *Memory) DeleteUser(ctx context.Context, id string) (model.User, error) {
	if err := m.delay(ctx, m.latency.Delete); err != nil {
		return model.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

var _ Store = (*Memory)(nil)
