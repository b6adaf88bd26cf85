package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	taskList := m.renderTaskList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, taskList)

	if m.mode == ModeAddTask || m.mode == ModeAddProject {
		modal := m.renderModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	sidebarWidth := 26
	var s string

	s += HeaderStyle.Render("FlowForge") + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", 20)) + "\n\n"

	all := query.ProjectStats(m.allTasks, query.All)
	s += m.renderProjectLine(0, "All Tasks", all) + "\n"

	for i, p := range m.projects {
		stats := query.ProjectStats(m.allTasks, p.ID)
		s += m.renderProjectLine(i+1, p.Name, stats) + "\n"
	}

	s += "\n" + HelpStyle.Render("p new project")

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(s)
}

func (m Model) renderProjectLine(index int, name string, stats query.Stats) string {
	cursor := "  "
	style := ItemStyle
	if index == m.projCursor {
		cursor = "❯ "
		if m.pane == PaneSidebar {
			style = ItemSelectedStyle
		}
	}
	line := fmt.Sprintf("%s%-12s %d/%d", cursor, truncate(name, 12), stats.Completed, stats.Total)
	return style.Render(line)
}

func (m Model) renderTaskList() string {
	width := m.width - 28
	var s string

	header := fmt.Sprintf("Tasks  ·  filter: %s  ·  sort: %s",
		statusFilters[m.statusFilter], sortKeys[m.sortKey])
	s += HeaderStyle.Render(header) + "\n\n"

	if len(m.tasks) == 0 {
		s += HelpStyle.Render("No tasks. Press 'a' to add one.")
		return TaskListStyle.Width(width).Height(m.height - 2).Render(s)
	}

	for i, t := range m.tasks {
		s += m.renderTaskLine(i, t) + "\n"
	}

	return TaskListStyle.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) renderTaskLine(index int, t model.Task) string {
	icon := "[ ]"
	switch t.Status {
	case model.StatusCompleted:
		icon = "[x]"
	case model.StatusInProgress:
		icon = "[~]"
	}

	badge := priorityBadge(t.Priority)

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue() {
			due = OverdueStyle.Render(due + "!")
		}
	}

	display := query.ResolveProjectDisplay(t.ProjectID, m.projects)

	line := fmt.Sprintf("%s %s %-40s %-8s %s", icon, badge, truncate(t.Title, 40), due, display.Name)

	style := ItemStyle
	if t.Status == model.StatusCompleted {
		style = TaskDoneStyle
	}
	if index == m.taskCursor && m.pane == PaneTaskList {
		style = ItemSelectedStyle
	}
	return style.Render(line)
}

func priorityBadge(p model.Priority) string {
	switch p {
	case model.PriorityUrgent:
		return PriorityUrgentStyle.Render("!!")
	case model.PriorityHigh:
		return PriorityHighStyle.Render("! ")
	case model.PriorityMedium:
		return PriorityMediumStyle.Render("· ")
	default:
		return PriorityLowStyle.Render("  ")
	}
}

func (m Model) renderModal() string {
	title := "New Task"
	if m.mode == ModeAddProject {
		title = "New Project"
	}
	content := HeaderStyle.Render(title) + "\n\n" +
		m.input.View() + "\n\n" +
		HelpStyle.Render("enter save · esc cancel")
	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	rows := []string{
		"FlowForge keys",
		"",
		"  ↑/k ↓/j     move",
		"  tab h l     switch pane",
		"  a           add task",
		"  p           new project",
		"  x / enter   toggle completed",
		"  d           delete task",
		"  s           cycle status filter",
		"  o           cycle sort key",
		"  ?           close help",
		"  q           quit",
	}
	return TaskListStyle.Height(m.height - 2).Render(strings.Join(rows, "\n"))
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = "a add · x done · d delete · s filter · o sort · ? help · q quit"
	}
	return StatusBarStyle.Width(m.width).Render(left)
}
