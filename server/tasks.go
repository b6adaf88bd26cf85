package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
	"github.com/apper-canvas/flowforge/internal/store"
)

// handleListTasks returns the task collection, optionally filtered and
// sorted: /api/v1/tasks?status=todo&project=<id>&sort=priority
func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.store.ListTasks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	if status := c.QueryParam("status"); status != "" {
		tasks = query.FilterByStatus(tasks, status)
	}
	if project := c.QueryParam("project"); project != "" {
		tasks = query.FilterByProject(tasks, project)
	}
	if sortKey := c.QueryParam("sort"); sortKey != "" {
		tasks = query.SortTasks(tasks, query.SortKey(sortKey))
	}

	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c echo.Context) error {
	task, err := s.store.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

type createTaskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	Status      model.Status   `json:"status"`
	DueDate     string         `json:"dueDate"`
	ProjectID   string         `json:"projectId"`
	Tags        []string       `json:"tags"`
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	draft := model.NewTask(req.Title)
	draft.Description = req.Description
	draft.ProjectID = req.ProjectID
	if req.Tags != nil {
		draft.Tags = req.Tags
	}
	if req.Priority != "" {
		if !req.Priority.IsValid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid priority %q", req.Priority)})
		}
		draft.Priority = req.Priority
	}
	if req.Status != "" {
		if !req.Status.IsValid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid status %q", req.Status)})
		}
		draft.Status = req.Status
	}
	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		draft.DueDate = &due
	}

	task, err := s.store.CreateTask(c.Request().Context(), draft)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

type updateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Priority    *model.Priority  `json:"priority"`
	Status      *model.Status    `json:"status"`
	DueDate     *string          `json:"dueDate"` // empty string clears the due date
	ProjectID   *string          `json:"projectId"`
	Tags        *[]string        `json:"tags"`
	Subtasks    *[]model.Subtask `json:"subtasks"`
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid priority %q", *req.Priority)})
		}
		patch.Priority = req.Priority
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid status %q", *req.Status)})
		}
		patch.Status = req.Status
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			patch.DueDate = &due
		}
	}
	if req.Tags != nil {
		patch.Tags = *req.Tags
	}
	if req.Subtasks != nil {
		patch.Subtasks = *req.Subtasks
	}

	task, err := s.store.UpdateTask(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	task, err := s.store.DeleteTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

type changeStatusRequest struct {
	Status model.Status `json:"status"`
}

func (s *Server) handleChangeTaskStatus(c echo.Context) error {
	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if !req.Status.IsValid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid status %q", req.Status)})
	}

	task, err := s.tasks.ChangeStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// parseDueDate accepts a date or a full timestamp
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q", s)
	}
	return t, nil
}
