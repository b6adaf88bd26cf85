package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/store"
)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st := store.NewMemory()
	return New(st), st
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/tasks", map[string]any{
		"title":    "from the API",
		"priority": "urgent",
		"tags":     []string{"api"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var created model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" || created.Priority != model.PriorityUrgent {
		t.Errorf("unexpected created task: %+v", created)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/tasks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var tasks []model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Errorf("unexpected list: %+v", tasks)
	}
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	srv, st := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/tasks", map[string]any{"title": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	tasks, _ := st.ListTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("rejected create still stored a task")
	}
}

func TestListTasksFilterAndSort(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	for _, spec := range []struct {
		title    string
		priority model.Priority
		status   model.Status
	}{
		{"low todo", model.PriorityLow, model.StatusTodo},
		{"urgent todo", model.PriorityUrgent, model.StatusTodo},
		{"high done", model.PriorityHigh, model.StatusCompleted},
	} {
		draft := model.NewTask(spec.title)
		draft.Priority = spec.priority
		draft.Status = spec.status
		if _, err := st.CreateTask(ctx, draft); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/tasks?status=todo&sort=priority", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var tasks []model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "urgent todo" || tasks[1].Title != "low todo" {
		t.Errorf("unexpected filtered order: %+v", tasks)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/tasks/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChangeTaskStatusEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	created, _ := st.CreateTask(ctx, model.NewTask("one click"))

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/tasks/"+created.ID+"/status",
		map[string]string{"status": "completed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var task model.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if task.Status != model.StatusCompleted || task.CompletedAt == nil {
		t.Errorf("expected completed with stamp, got %+v", task)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/tasks/"+created.ID+"/status",
		map[string]string{"status": "todo"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if task.CompletedAt != nil {
		t.Errorf("expected cleared stamp, got %v", task.CompletedAt)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/tasks/"+created.ID+"/status",
		map[string]string{"status": "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", rec.Code)
	}
}

func TestUpdateTaskClearsDueDate(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/tasks", map[string]any{
		"title":   "dated",
		"dueDate": "2026-09-15",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var created model.Task
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.DueDate == nil {
		t.Fatal("expected a due date")
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/tasks/"+created.ID, map[string]any{
		"dueDate": "",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	got, _ := st.GetTask(ctx, created.ID)
	if got.DueDate != nil {
		t.Errorf("expected cleared due date, got %v", got.DueDate)
	}
}

func TestDeleteTaskEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	created, _ := st.CreateTask(context.Background(), model.NewTask("short lived"))

	rec := doJSON(t, srv, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on double delete, got %d", rec.Code)
	}
}

func TestProjectEndpoints(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/projects", map[string]string{"name": "Launch"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var project model.Project
	json.Unmarshal(rec.Body.Bytes(), &project)
	if project.Color != model.DefaultProjectColor {
		t.Errorf("expected default color, got %q", project.Color)
	}

	draft := model.NewTask("belongs to launch")
	draft.ProjectID = project.ID
	draft.Status = model.StatusCompleted
	st.CreateTask(ctx, draft)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/projects/"+project.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view struct {
		model.Project
		Stats struct {
			Total     int `json:"Total"`
			Completed int `json:"Completed"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if view.Stats.Total != 1 || view.Stats.Completed != 1 {
		t.Errorf("unexpected live stats: %+v", view.Stats)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/projects/"+project.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Tasks survive their project.
	tasks, _ := st.ListTasks(ctx)
	if len(tasks) != 1 {
		t.Errorf("project delete cascaded to tasks")
	}
}

func TestUserEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/users", map[string]string{
		"name":  "Ava Martin",
		"email": "ava@flowforge.dev",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var user model.User
	json.Unmarshal(rec.Body.Bytes(), &user)

	rec = doJSON(t, srv, http.MethodPut, "/api/v1/users/"+user.ID, map[string]string{"role": "admin"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var updated model.User
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Role != "admin" || updated.Name != "Ava Martin" {
		t.Errorf("merge mismatch: %+v", updated)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
