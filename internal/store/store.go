package store

import (
	"context"
	"errors"
	"time"

	"github.com/apper-canvas/flowforge/internal/model"
)

// ErrNotFound is returned when an operation targets an id absent from the
// collection. It is the only domain error the store raises; check with
// errors.Is.
var ErrNotFound = errors.New("not found")

// TaskPatch is a partial update. Nil fields keep their prior value.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Status      *model.Status
	DueDate     *time.Time
	// ClearDueDate removes the due date; DueDate is ignored when set.
	ClearDueDate bool
	ProjectID    *string
	Tags         []string
	Subtasks     []model.Subtask
}

// ProjectPatch is a partial update. Nil fields keep their prior value.
type ProjectPatch struct {
	Name           *string
	Color          *string
	TaskCount      *int
	CompletedCount *int
}

// UserPatch is a partial update. Nil fields keep their prior value.
type UserPatch struct {
	Name   *string
	Email  *string
	Avatar *string
	Role   *string
}

// Store is the repository contract for the task, project and user
// collections. Every method returns fresh copies, never live references.
// List order is insertion order; new records always append.
//
// Create assigns identity and derived fields. UpdateTask re-derives
// CompletedAt from the resulting status: entering completed stamps the
// transition time, leaving it clears the stamp, staying completed keeps it.
// Delete returns the pre-deletion value.
type Store interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (model.Task, error)
	CreateTask(ctx context.Context, draft model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (model.Task, error)
	DeleteTask(ctx context.Context, id string) (model.Task, error)

	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (model.Project, error)
	CreateProject(ctx context.Context, draft model.Project) (model.Project, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (model.Project, error)
	DeleteProject(ctx context.Context, id string) (model.Project, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, draft model.User) (model.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (model.User, error)
	DeleteUser(ctx context.Context, id string) (model.User, error)

	// Seed loads records verbatim, keeping their ids and timestamps.
	// Used once at startup to install the fixture collections.
	Seed(ctx context.Context, tasks []model.Task, projects []model.Project, users []model.User) error

	Close() error
}

// Latency holds per-operation artificial delays emulating a remote
// backend. The zero value disables the simulation.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

// SimulatedLatency returns per-operation delays in the range a remote
// backend would show.
func SimulatedLatency() Latency {
	return Latency{
		List:   300 * time.Millisecond,
		Get:    200 * time.Millisecond,
		Create: 400 * time.Millisecond,
		Update: 350 * time.Millisecond,
		Delete: 250 * time.Millisecond,
	}
}
