package model

import "time"

// Status values a task moves through
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// IsValid reports whether s is a storable status
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority levels for tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the sort weight of a priority: urgent(4) > high(3) > medium(2) > low(1).
// Unknown priorities rank 0 and sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// Task represents a single unit of work, optionally attached to a project
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ProjectID   string     `json:"projectId,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// Subtask is a child item of a task. Stored and returned but not
// otherwise manipulated by the core.
type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// NewTask returns a task draft with defaults
func NewTask(title string) Task {
	return Task{
		Title:    title,
		Priority: PriorityMedium,
		Status:   StatusTodo,
		Tags:     []string{},
		Subtasks: []Subtask{},
	}
}

// IsOverdue returns true if the task has a due date in the past and is not completed
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}

// Clone returns a deep copy so callers can never reach store internals
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		c.CompletedAt = &done
	}
	c.Tags = append([]string{}, t.Tags...)
	c.Subtasks = append([]Subtask{}, t.Subtasks...)
	return c
}
