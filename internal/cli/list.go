package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks filtered by status or project and sorted by the given key.

Examples:
  flowforge list
  flowforge list --status in-progress
  flowforge list --project 1754990400000-a1b2c3 --sort priority`,
	RunE: runList,
}

var (
	listStatus  string
	listProject string
	listSort    string
)

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "Filter by status (all, todo, in-progress, completed)")
	listCmd.Flags().StringVarP(&listProject, "project", "P", "all", "Filter by project id (all for every project)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key (priority, dueDate, title, created)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	tasks, err := st.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	projects, err := st.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	sortKey := listSort
	if sortKey == "" {
		sortKey = cfg.DefaultSort
	}

	view := query.FilterByStatus(tasks, listStatus)
	view = query.FilterByProject(view, listProject)
	view = query.SortTasks(view, query.SortKey(sortKey))

	if len(view) == 0 {
		fmt.Println("No tasks found. Add one with: flowforge add \"Your task\"")
		return nil
	}

	stats := query.ProjectStats(view, query.All)
	fmt.Printf("\n%d tasks (%d completed)\n", stats.Total, stats.Completed)
	fmt.Println(strings.Repeat("─", 78))
	for _, t := range view {
		printTask(t, projects)
	}
	fmt.Println()
	return nil
}

func printTask(t model.Task, projects []model.Project) {
	icon := "[ ]"
	switch t.Status {
	case model.StatusCompleted:
		icon = "[x]"
	case model.StatusInProgress:
		icon = "[~]"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue() {
			due += "!"
		}
	}

	display := query.ResolveProjectDisplay(t.ProjectID, projects)

	title := t.Title
	if len(title) > 36 {
		title = title[:33] + "..."
	}

	fmt.Printf("  %s  %-20s  %-36s  %-8s  %-7s  %s\n",
		icon, t.ID, title, due, t.Priority, display.Name)
}
