package store

import (
	"context"
	"testing"

	"github.com/apper-canvas/flowforge/internal/model"
)

func TestFixturesParse(t *testing.T) {
	tasks, projects, users, err := Fixtures()
	if err != nil {
		t.Fatalf("Fixtures failed: %v", err)
	}
	if len(tasks) == 0 || len(projects) == 0 || len(users) == 0 {
		t.Fatalf("expected non-empty fixtures, got %d/%d/%d", len(tasks), len(projects), len(users))
	}

	for _, task := range tasks {
		if task.ID == "" || task.Title == "" {
			t.Errorf("fixture task missing identity: %+v", task)
		}
		if !task.Priority.IsValid() {
			t.Errorf("fixture task %s has invalid priority %q", task.ID, task.Priority)
		}
		if !task.Status.IsValid() {
			t.Errorf("fixture task %s has invalid status %q", task.ID, task.Status)
		}
		// CompletedAt must agree with status even in static data.
		if (task.Status == model.StatusCompleted) != (task.CompletedAt != nil) {
			t.Errorf("fixture task %s violates the completion invariant", task.ID)
		}
	}
}

func TestSeedFixturesIntoMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := SeedFixtures(ctx, m); err != nil {
		t.Fatalf("SeedFixtures failed: %v", err)
	}

	tasks, _ := m.ListTasks(ctx)
	projects, _ := m.ListProjects(ctx)

	known := map[string]bool{"": true} // unassigned is legal
	for _, p := range projects {
		known[p.ID] = true
	}
	for _, task := range tasks {
		if !known[task.ProjectID] {
			t.Errorf("fixture task %s references unknown project %q", task.ID, task.ProjectID)
		}
	}
}
