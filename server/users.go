package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/store"
)

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.store.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) handleGetUser(c echo.Context) error {
	user, err := s.store.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleCreateUser(c echo.Context) error {
	var draft model.User
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(draft.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	user, err := s.store.CreateUser(c.Request().Context(), draft)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Avatar *string `json:"avatar"`
	Role   *string `json:"role"`
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	user, err := s.store.UpdateUser(c.Request().Context(), c.Param("id"), store.UserPatch{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		Role:   req.Role,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	user, err := s.store.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
