package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Priority colors
	ColorUrgent = lipgloss.Color("#ef4444")
	ColorHigh   = lipgloss.Color("#f97316")
	ColorMedium = lipgloss.Color("#eab308")
	ColorLow    = lipgloss.Color("#22c55e")

	// UI colors
	Primary   = lipgloss.Color("#6366f1")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	PriorityUrgentStyle = lipgloss.NewStyle().Foreground(ColorUrgent).Bold(true)
	PriorityHighStyle   = lipgloss.NewStyle().Foreground(ColorHigh).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(ColorMedium)
	PriorityLowStyle    = lipgloss.NewStyle().Foreground(ColorLow)

	OverdueStyle = lipgloss.NewStyle().Foreground(ColorUrgent)

	ModalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)
