package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apper-canvas/flowforge/internal/logger"
	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeAddProject:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneTaskList

	case key.Matches(msg, keys.Up):
		if m.pane == PaneSidebar {
			if m.projCursor > 0 {
				m.projCursor--
				m.taskCursor = 0
				m.applyView()
			}
		} else if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.pane == PaneSidebar {
			if m.projCursor < len(m.projects) {
				m.projCursor++
				m.taskCursor = 0
				m.applyView()
			}
		} else if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}

	case key.Matches(msg, keys.Filter):
		m.statusFilter = (m.statusFilter + 1) % len(statusFilters)
		m.taskCursor = 0
		m.applyView()
		m.message = "Filter: " + statusFilters[m.statusFilter]

	case key.Matches(msg, keys.Sort):
		m.sortKey = (m.sortKey + 1) % len(sortKeys)
		m.applyView()
		m.message = "Sort: " + string(sortKeys[m.sortKey])

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		m.input.Placeholder = "Task title..."
		m.input.SetValue("")
		m.input.Focus()

	case key.Matches(msg, keys.Project):
		m.mode = ModeAddProject
		m.input.Placeholder = "Project name..."
		m.input.SetValue("")
		m.input.Focus()

	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		if m.pane == PaneTaskList {
			m.toggleCurrentTask()
		} else if key.Matches(msg, keys.Enter) {
			m.pane = PaneTaskList
		}

	case key.Matches(msg, keys.Delete):
		if m.pane == PaneTaskList {
			m.deleteCurrentTask()
		}
	}

	return m, nil
}

func (m *Model) toggleCurrentTask() {
	task := m.currentTask()
	if task == nil {
		return
	}
	updated, err := m.svc.ToggleCompleted(context.Background(), task.ID)
	if err != nil {
		logger.Error("Failed to toggle task", logger.F("id", task.ID), logger.F("error", err))
		m.message = "Failed to update task"
		return
	}
	if updated.Status == model.StatusCompleted {
		m.message = fmt.Sprintf("Completed %q", updated.Title)
	} else {
		m.message = fmt.Sprintf("Reopened %q", updated.Title)
	}
	m.loadData()
}

func (m *Model) deleteCurrentTask() {
	task := m.currentTask()
	if task == nil {
		return
	}
	deleted, err := m.store.DeleteTask(context.Background(), task.ID)
	if err != nil {
		logger.Error("Failed to delete task", logger.F("id", task.ID), logger.F("error", err))
		m.message = "Failed to delete task"
		return
	}
	m.message = fmt.Sprintf("Deleted %q", deleted.Title)
	m.loadData()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.message = "Title is required"
			return m, nil
		}

		ctx := context.Background()
		switch m.mode {
		case ModeAddTask:
			draft := model.NewTask(value)
			if id := m.selectedProjectID(); id != query.All {
				draft.ProjectID = id
			}
			if _, err := m.store.CreateTask(ctx, draft); err != nil {
				logger.Error("Failed to create task", logger.F("error", err))
				m.message = "Failed to create task"
			} else {
				m.message = fmt.Sprintf("Added %q", value)
			}
		case ModeAddProject:
			if _, err := m.store.CreateProject(ctx, model.NewProject(value)); err != nil {
				logger.Error("Failed to create project", logger.F("error", err))
				m.message = "Failed to create project"
			} else {
				m.message = fmt.Sprintf("Created project %q", value)
			}
		}

		m.mode = ModeNormal
		m.input.Blur()
		m.loadData()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
