package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apper-canvas/flowforge/internal/model"
)

func TestCreateTaskDefaults(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateTask(ctx, model.NewTask("write report"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if created.ID == "" {
		t.Error("expected an assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.CompletedAt != nil {
		t.Errorf("expected nil CompletedAt for a todo task, got %v", created.CompletedAt)
	}
	if created.Subtasks == nil || len(created.Subtasks) != 0 {
		t.Errorf("expected empty subtasks, got %v", created.Subtasks)
	}

	got, err := m.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTask after create failed: %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("round-trip mismatch: created %+v, got %+v", created, got)
	}
}

func TestCreateTaskCompletedStampsTime(t *testing.T) {
	m := NewMemory()
	draft := model.NewTask("already done")
	draft.Status = model.StatusCompleted

	before := time.Now()
	created, err := m.CreateTask(context.Background(), draft)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	after := time.Now()

	if created.CompletedAt == nil {
		t.Fatal("expected CompletedAt for a completed task")
	}
	if created.CompletedAt.Before(before) || created.CompletedAt.After(after) {
		t.Errorf("CompletedAt %v outside call window [%v, %v]", created.CompletedAt, before, after)
	}
}

func TestUpdateTaskMergesPartialFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	draft := model.NewTask("original")
	draft.Description = "keep me"
	draft.Priority = model.PriorityHigh
	created, _ := m.CreateTask(ctx, draft)

	title := "renamed"
	updated, err := m.UpdateTask(ctx, created.ID, TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if updated.Title != "renamed" {
		t.Errorf("expected title to change, got %q", updated.Title)
	}
	if updated.Description != "keep me" {
		t.Errorf("unspecified field changed: %q", updated.Description)
	}
	if updated.Priority != model.PriorityHigh {
		t.Errorf("unspecified field changed: %q", updated.Priority)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt must be immutable")
	}
}

func TestCompletedAtInvariant(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	created, _ := m.CreateTask(ctx, model.NewTask("toggle me"))

	completed := model.StatusCompleted
	todo := model.StatusTodo

	t.Run("entering completed stamps the time", func(t *testing.T) {
		before := time.Now()
		updated, err := m.UpdateTask(ctx, created.ID, TaskPatch{Status: &completed})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if updated.CompletedAt == nil {
			t.Fatal("expected CompletedAt to be set")
		}
		if updated.CompletedAt.Before(before) {
			t.Errorf("CompletedAt %v predates the transition", updated.CompletedAt)
		}
	})

	t.Run("staying completed keeps the stamp", func(t *testing.T) {
		first, _ := m.GetTask(ctx, created.ID)
		title := "still done"
		updated, err := m.UpdateTask(ctx, created.ID, TaskPatch{Title: &title, Status: &completed})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if updated.CompletedAt == nil || !updated.CompletedAt.Equal(*first.CompletedAt) {
			t.Errorf("expected stamp %v to survive, got %v", first.CompletedAt, updated.CompletedAt)
		}
	})

	t.Run("leaving completed clears the stamp", func(t *testing.T) {
		updated, err := m.UpdateTask(ctx, created.ID, TaskPatch{Status: &todo})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if updated.CompletedAt != nil {
			t.Errorf("expected nil CompletedAt after reopening, got %v", updated.CompletedAt)
		}
	})
}

func TestUpdateTaskNotFoundLeavesCollectionUnchanged(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.CreateTask(ctx, model.NewTask("only task"))

	before, _ := m.ListTasks(ctx)

	title := "nope"
	_, err := m.UpdateTask(ctx, "missing-id", TaskPatch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after, _ := m.ListTasks(ctx)
	if len(after) != len(before) {
		t.Fatalf("collection size changed after failed update: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].Title != before[i].Title {
			t.Errorf("task %d changed after failed update", i)
		}
	}
}

func TestDeleteTaskReturnsPriorValue(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	created, _ := m.CreateTask(ctx, model.NewTask("doomed"))

	deleted, err := m.DeleteTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if deleted.ID != created.ID || deleted.Title != "doomed" {
		t.Errorf("expected the pre-deletion record, got %+v", deleted)
	}

	if _, err := m.GetTask(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := m.DeleteTask(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestListTasksInsertionOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := m.CreateTask(ctx, model.NewTask(title)); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	tasks, err := m.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Errorf("position %d: expected %q, got %q", i, w, tasks[i].Title)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	draft := model.NewTask("isolated")
	draft.Tags = []string{"a"}
	created, _ := m.CreateTask(ctx, draft)

	snapshot, _ := m.ListTasks(ctx)
	snapshot[0].Title = "mutated"
	snapshot[0].Tags[0] = "mutated"

	got, _ := m.GetTask(ctx, created.ID)
	if got.Title != "isolated" {
		t.Errorf("store title mutated through snapshot: %q", got.Title)
	}
	if got.Tags[0] != "a" {
		t.Errorf("store tags mutated through snapshot: %v", got.Tags)
	}
}

func TestProjectDefaults(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateProject(ctx, model.Project{Name: "Launch", TaskCount: 99})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if created.Color != model.DefaultProjectColor {
		t.Errorf("expected default color, got %q", created.Color)
	}
	if created.TaskCount != 0 || created.CompletedCount != 0 {
		t.Errorf("expected zeroed aggregates, got %d/%d", created.TaskCount, created.CompletedCount)
	}
}

func TestDeleteProjectDoesNotCascade(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	project, _ := m.CreateProject(ctx, model.Project{Name: "Short-lived"})
	draft := model.NewTask("orphan-to-be")
	draft.ProjectID = project.ID
	task, _ := m.CreateTask(ctx, draft)

	if _, err := m.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	got, err := m.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("task vanished with its project: %v", err)
	}
	if got.ProjectID != project.ID {
		t.Errorf("expected the dangling reference to survive, got %q", got.ProjectID)
	}
}

func TestUserCRUD(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateUser(ctx, model.User{Name: "Ava", Email: "ava@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	email := "ava@flowforge.dev"
	updated, err := m.UpdateUser(ctx, created.ID, UserPatch{Email: &email})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Email != email || updated.Name != "Ava" {
		t.Errorf("merge mismatch: %+v", updated)
	}

	if _, err := m.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := m.GetUser(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLatencyHonorsCancellation(t *testing.T) {
	m := NewMemory(WithLatency(Latency{Create: time.Second}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.CreateTask(ctx, model.NewTask("never lands"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	tasks, _ := m.ListTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("cancelled create still mutated the store: %d tasks", len(tasks))
	}
}

func TestSeedKeepsRecordsVerbatim(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seeded := model.Task{
		ID:        "fixed-id",
		Title:     "seeded",
		Priority:  model.PriorityLow,
		Status:    model.StatusTodo,
		Tags:      []string{},
		CreatedAt: createdAt,
		Subtasks:  []model.Subtask{},
	}
	if err := m.Seed(ctx, []model.Task{seeded}, nil, nil); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, err := m.GetTask(ctx, "fixed-id")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("seed rewrote CreatedAt: %v", got.CreatedAt)
	}
}
