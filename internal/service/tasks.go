// Package service sits between the fronts (CLI, TUI, HTTP) and the
// store. It owns the one-click status-transition command and the
// mutate-then-snapshot wrappers that save callers a refetch round-trip.
package service

import (
	"context"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/store"
)

// TaskService wraps a Store. It holds no state of its own.
type TaskService struct {
	store store.Store
}

// NewTaskService creates a TaskService over s
func NewTaskService(s store.Store) *TaskService {
	return &TaskService{store: s}
}

// Store exposes the underlying repository for operations the service
// does not wrap.
func (s *TaskService) Store() store.Store {
	return s.store
}

// ChangeStatus moves a task to the given status. The store re-derives
// CompletedAt from the transition, so toggling into completed stamps the
// time and toggling out clears it regardless of prior state. Errors from
// the store propagate unchanged.
func (s *TaskService) ChangeStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	return s.store.UpdateTask(ctx, id, store.TaskPatch{Status: &status})
}

// ToggleCompleted flips a task between completed and todo, matching the
// checkbox behavior: anything not completed goes to completed, completed
// goes back to todo.
func (s *TaskService) ToggleCompleted(ctx context.Context, id string) (model.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	next := model.StatusCompleted
	if t.Status == model.StatusCompleted {
		next = model.StatusTodo
	}
	return s.ChangeStatus(ctx, id, next)
}

// CreateTask persists a draft and returns the created record with a
// fresh snapshot of the whole collection.
func (s *TaskService) CreateTask(ctx context.Context, draft model.Task) (model.Task, []model.Task, error) {
	created, err := s.store.CreateTask(ctx, draft)
	if err != nil {
		return model.Task{}, nil, err
	}
	snapshot, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.Task{}, nil, err
	}
	return created, snapshot, nil
}

// UpdateTask applies a partial update and returns the updated record
// with a fresh snapshot.
func (s *TaskService) UpdateTask(ctx context.Context, id string, patch store.TaskPatch) (model.Task, []model.Task, error) {
	updated, err := s.store.UpdateTask(ctx, id, patch)
	if err != nil {
		return model.Task{}, nil, err
	}
	snapshot, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.Task{}, nil, err
	}
	return updated, snapshot, nil
}

// DeleteTask removes a task and returns the deleted record with a fresh
// snapshot.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (model.Task, []model.Task, error) {
	deleted, err := s.store.DeleteTask(ctx, id)
	if err != nil {
		return model.Task{}, nil, err
	}
	snapshot, err := s.store.ListTasks(ctx)
	if err != nil {
		return model.Task{}, nil, err
	}
	return deleted, snapshot, nil
}
