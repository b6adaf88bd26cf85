package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task, optionally attached to a project.

Examples:
  flowforge add "Buy groceries"
  flowforge add "Quarterly report" --priority urgent --due 2026-09-15
  flowforge add "Fix login bug" --project 1754990400000-a1b2c3 --tags bug,auth`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addStatus      string
	addDue         string
	addProject     string
	addTags        []string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "desc", "D", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority (low, medium, high, urgent)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "todo", "Status (todo, in-progress, completed)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project id")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Comma-separated tags")
}

func runAdd(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("task title is required")
	}

	draft := model.NewTask(title)
	draft.Description = addDescription
	draft.ProjectID = addProject
	if addTags != nil {
		draft.Tags = addTags
	}

	if p := model.Priority(addPriority); p.IsValid() {
		draft.Priority = p
	}
	if s := model.Status(addStatus); s.IsValid() {
		draft.Status = s
	}
	if addDue != "" {
		due, err := time.Parse("2006-01-02", addDue)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", addDue, err)
		}
		draft.DueDate = &due
	}

	ctx := context.Background()
	created, err := st.CreateTask(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	projects, _ := st.ListProjects(ctx)
	display := query.ResolveProjectDisplay(created.ProjectID, projects)

	fmt.Printf("✓ Added to [%s]: %q (%s, id: %s)\n", display.Name, created.Title, created.Priority, created.ID)
	return nil
}
