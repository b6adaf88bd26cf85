package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
	"github.com/apper-canvas/flowforge/internal/store"
)

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.ListProjects(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// projectView pairs a project with its live counts; the stored
// aggregates on the record itself are never maintained.
type projectView struct {
	model.Project
	Stats query.Stats `json:"stats"`
}

func (s *Server) handleGetProject(c echo.Context) error {
	ctx := c.Request().Context()
	project, err := s.store.GetProject(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, projectView{
		Project: project,
		Stats:   query.ProjectStats(tasks, project.ID),
	})
}

type createProjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	draft := model.NewProject(req.Name)
	if req.Color != "" {
		draft.Color = req.Color
	}

	project, err := s.store.CreateProject(c.Request().Context(), draft)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

type updateProjectRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	project, err := s.store.UpdateProject(c.Request().Context(), c.Param("id"), store.ProjectPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	project, err := s.store.DeleteProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, project)
}
