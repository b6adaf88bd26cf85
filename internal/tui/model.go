package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/apper-canvas/flowforge/internal/logger"
	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
	"github.com/apper-canvas/flowforge/internal/service"
	"github.com/apper-canvas/flowforge/internal/store"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddProject
	ModeHelp
)

// statusFilters cycled by the filter key. "all" first.
var statusFilters = []string{
	query.All,
	string(model.StatusTodo),
	string(model.StatusInProgress),
	string(model.StatusCompleted),
}

// sortKeys cycled by the sort key
var sortKeys = []query.SortKey{
	query.SortByCreated,
	query.SortByPriority,
	query.SortByDueDate,
	query.SortByTitle,
}

// Model is the main TUI model
type Model struct {
	store store.Store
	svc   *service.TaskService

	// Snapshots from the store
	allTasks []model.Task
	projects []model.Project

	// Derived view
	tasks []model.Task

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	projCursor int // 0 = all projects, 1..n = projects[i-1]
	taskCursor int

	statusFilter int // index into statusFilters
	sortKey      int // index into sortKeys

	input   textinput.Model
	message string
}

// NewModel creates a new TUI model
func NewModel(st store.Store, defaultSort string) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		store: st,
		svc:   service.NewTaskService(st),
		pane:  PaneSidebar,
		mode:  ModeNormal,
		input: ti,
	}

	for i, k := range sortKeys {
		if string(k) == defaultSort {
			m.sortKey = i
		}
	}

	m.loadData()
	logger.Debug("TUI model initialized",
		logger.F("projects", len(m.projects)),
		logger.F("tasks", len(m.allTasks)))
	return m
}

// loadData refreshes the snapshots and rebuilds the derived view
func (m *Model) loadData() {
	ctx := context.Background()
	tasks, err := m.store.ListTasks(ctx)
	if err != nil {
		logger.Error("Failed to list tasks", logger.F("error", err))
		m.message = "Failed to load tasks"
		return
	}
	projects, err := m.store.ListProjects(ctx)
	if err != nil {
		logger.Error("Failed to list projects", logger.F("error", err))
		m.message = "Failed to load projects"
		return
	}

	m.allTasks = tasks
	m.projects = projects
	if m.projCursor > len(m.projects) {
		m.projCursor = 0
	}
	m.applyView()
}

// applyView derives the visible task list from the snapshot
func (m *Model) applyView() {
	view := query.FilterByProject(m.allTasks, m.selectedProjectID())
	view = query.FilterByStatus(view, statusFilters[m.statusFilter])
	m.tasks = query.SortTasks(view, sortKeys[m.sortKey])

	if m.taskCursor >= len(m.tasks) {
		m.taskCursor = 0
	}
}

// selectedProjectID returns the project filter for the sidebar cursor
func (m *Model) selectedProjectID() string {
	if m.projCursor == 0 || m.projCursor > len(m.projects) {
		return query.All
	}
	return m.projects[m.projCursor-1].ID
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.tasks) {
		return &m.tasks[m.taskCursor]
	}
	return nil
}
