package model

import (
	"testing"
	"time"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("write release notes")
	if task.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %q", task.Priority)
	}
	if task.Status != StatusTodo {
		t.Errorf("expected todo status, got %q", task.Status)
	}
	if task.Tags == nil || task.Subtasks == nil {
		t.Error("expected empty slices, not nil")
	}
	if task.CompletedAt != nil {
		t.Error("new task must not carry a completion time")
	}
}

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() <= order[i].Rank() {
			t.Errorf("%s should outrank %s", order[i-1], order[i])
		}
	}
	if Priority("bogus").Rank() != 0 {
		t.Errorf("unknown priority should rank 0")
	}
}

func TestValidation(t *testing.T) {
	for _, s := range []Status{StatusTodo, StatusInProgress, StatusCompleted} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("done").IsValid() {
		t.Error("'done' is not a status")
	}
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Priority("critical").IsValid() {
		t.Error("'critical' is not a priority")
	}
}

func TestIsOverdue(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	task := NewTask("due yesterday")
	task.DueDate = &past
	if !task.IsOverdue() {
		t.Error("past due date should be overdue")
	}

	task.Status = StatusCompleted
	if task.IsOverdue() {
		t.Error("completed tasks are never overdue")
	}

	task.Status = StatusTodo
	task.DueDate = &future
	if task.IsOverdue() {
		t.Error("future due date is not overdue")
	}

	task.DueDate = nil
	if task.IsOverdue() {
		t.Error("dateless tasks are never overdue")
	}
}

func TestCloneIsDeep(t *testing.T) {
	due := time.Now().Add(time.Hour)
	task := NewTask("original")
	task.DueDate = &due
	task.Tags = []string{"a"}
	task.Subtasks = []Subtask{{ID: "s1", Title: "step"}}

	clone := task.Clone()
	clone.Tags[0] = "b"
	clone.Subtasks[0].Done = true
	*clone.DueDate = clone.DueDate.Add(48 * time.Hour)

	if task.Tags[0] != "a" {
		t.Error("tags are shared between clone and original")
	}
	if task.Subtasks[0].Done {
		t.Error("subtasks are shared between clone and original")
	}
	if !task.DueDate.Equal(due) {
		t.Error("due date is shared between clone and original")
	}
}
