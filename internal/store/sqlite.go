package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apper-canvas/flowforge/internal/model"
	_ "modernc.org/sqlite"
)

// SQLite backs the Store contract with a local database file. Merge
// semantics and the CompletedAt derivation match Memory exactly: updates
// read the prior row, patch it in Go, and write the result in one
// transaction.
type SQLite struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path (~/.flowforge/flowforge.db)
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".flowforge", "flowforge.db"), nil
}

// OpenSQLite opens or creates the database and runs migrations
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database
func (s *SQLite) Close() error {
	return s.db.Close()
}

const taskColumns = "id, title, description, priority, status, due_date, project_id, tags, created_at, completed_at, subtasks"

func scanTask(row interface{ Scan(...any) error }) (model.Task, error) {
	var (
		t         model.Task
		due       sql.NullString
		created   string
		completed sql.NullString
		tags      string
		subtasks  string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&due, &t.ProjectID, &tags, &created, &completed, &subtasks)
	if err != nil {
		return model.Task{}, err
	}

	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return model.Task{}, fmt.Errorf("bad created_at for task %s: %w", t.ID, err)
	}
	if due.Valid {
		d, err := time.Parse(time.RFC3339Nano, due.String)
		if err != nil {
			return model.Task{}, fmt.Errorf("bad due_date for task %s: %w", t.ID, err)
		}
		t.DueDate = &d
	}
	if completed.Valid {
		c, err := time.Parse(time.RFC3339Nano, completed.String)
		if err != nil {
			return model.Task{}, fmt.Errorf("bad completed_at for task %s: %w", t.ID, err)
		}
		t.CompletedAt = &c
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return model.Task{}, fmt.Errorf("bad tags for task %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(subtasks), &t.Subtasks); err != nil {
		return model.Task{}, fmt.Errorf("bad subtasks for task %s: %w", t.ID, err)
	}
	return t, nil
}

func taskArgs(t model.Task) ([]any, error) {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return nil, err
	}
	subtasks, err := json.Marshal(t.Subtasks)
	if err != nil {
		return nil, err
	}

	var due, completed sql.NullString
	if t.DueDate != nil {
		due = sql.NullString{String: t.DueDate.Format(time.RFC3339Nano), Valid: true}
	}
	if t.CompletedAt != nil {
		completed = sql.NullString{String: t.CompletedAt.Format(time.RFC3339Nano), Valid: true}
	}

	return []any{t.ID, t.Title, t.Description, string(t.Priority), string(t.Status),
		due, t.ProjectID, string(tags), t.CreatedAt.Format(time.RFC3339Nano), completed, string(subtasks)}, nil
}

// Tasks

func (s *SQLite) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (s *SQLite) CreateTask(ctx context.Context, draft model.Task) (model.Task, error) {
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

	args, err := taskArgs(t)
	if err != nil {
		return model.Task{}, err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?)", args...)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (s *SQLite) UpdateTask(ctx context.Context, id string, patch TaskPatch) (model.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	prior, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Task{}, err
	}

	updated := applyTaskPatch(prior.Clone(), patch)
	switch {
	case updated.Status != model.StatusCompleted:
		updated.CompletedAt = nil
	case prior.Status != model.StatusCompleted:
		now := time.Now()
		updated.CompletedAt = &now
	}

	args, err := taskArgs(updated)
	if err != nil {
		return model.Task{}, err
	}
	// Shift id to the WHERE clause.
	args = append(args[1:], id)
	_, err = tx.ExecContext(ctx, `UPDATE tasks SET title=?, description=?, priority=?, status=?,
		due_date=?, project_id=?, tags=?, created_at=?, completed_at=?, subtasks=? WHERE id=?`, args...)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

func (s *SQLite) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return model.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}
	return t, nil
}

// Projects

func (s *SQLite) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color, task_count, completed_count FROM projects ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.TaskCount, &p.CompletedCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLite) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, color, task_count, completed_count FROM projects WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Color, &p.TaskCount, &p.CompletedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *SQLite) CreateProject(ctx context.Context, draft model.Project) (model.Project, error) {
	p := draft
	p.ID = NewID(time.Now())
	if p.Color == "" {
		p.Color = model.DefaultProjectColor
	}
	p.TaskCount = 0
	p.CompletedCount = 0

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, color, task_count, completed_count) VALUES (?,?,?,?,?)",
		p.ID, p.Name, p.Color, p.TaskCount, p.CompletedCount)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (s *SQLite) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (model.Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Project{}, err
	}
	defer tx.Rollback()

	var p model.Project
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, color, task_count, completed_count FROM projects WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Color, &p.TaskCount, &p.CompletedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Project{}, err
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

	_, err = tx.ExecContext(ctx,
		"UPDATE projects SET name=?, color=?, task_count=?, completed_count=? WHERE id=?",
		p.Name, p.Color, p.TaskCount, p.CompletedCount, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (s *SQLite) DeleteProject(ctx context.Context, id string) (model.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return model.Project{}, err
	}
	// No cascade: tasks keep their dangling reference.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return model.Project{}, fmt.Errorf("failed to delete project: %w", err)
	}
	return p, nil
}

// Users

func (s *SQLite) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, avatar, role FROM users ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLite) GetUser(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, avatar, role FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, err
}

func (s *SQLite) CreateUser(ctx context.Context, draft model.User) (model.User, error) {
	u := draft
	u.ID = NewID(time.Now())
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, avatar, role) VALUES (?,?,?,?,?)",
		u.ID, u.Name, u.Email, u.Avatar, u.Role)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *SQLite) UpdateUser(ctx context.Context, id string, patch UserPatch) (model.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, err
	}
	defer tx.Rollback()

	var u model.User
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, email, avatar, role FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.User{}, err
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

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, avatar=?, role=? WHERE id=?",
		u.Name, u.Email, u.Avatar, u.Role, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (s *SQLite) DeleteUser(ctx context.Context, id string) (model.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return model.User{}, fmt.Errorf("failed to delete user: %w", err)
	}
	return u, nil
}

// Seed installs records verbatim, keeping ids and timestamps. Existing
// rows with the same id are left untouched so reopening a database does
// not duplicate fixtures.
func (s *SQLite) Seed(ctx context.Context, tasks []model.Task, projects []model.Project, users []model.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range projects {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO projects (id, name, color, task_count, completed_count) VALUES (?,?,?,?,?)",
			p.ID, p.Name, p.Color, p.TaskCount, p.CompletedCount)
		if err != nil {
			return fmt.Errorf("failed to seed project %s: %w", p.ID, err)
		}
	}
	for _, t := range tasks {
		args, err := taskArgs(t)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO tasks ("+taskColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?)", args...)
		if err != nil {
			return fmt.Errorf("failed to seed task %s: %w", t.ID, err)
		}
	}
	for _, u := range users {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO users (id, name, email, avatar, role) VALUES (?,?,?,?,?)",
			u.ID, u.Name, u.Email, u.Avatar, u.Role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

var _ Store = (*SQLite)(nil)
