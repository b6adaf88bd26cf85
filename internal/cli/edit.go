package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit task fields",
	Long: `Update one or more fields of a task. Only the flags you pass change;
everything else keeps its value.

Examples:
  flowforge edit 1755076800000-b1c2d3 --title "New title"
  flowforge edit 1755076800000-b1c2d3 --priority high --due 2026-10-01
  flowforge edit 1755076800000-b1c2d3 --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editPriority    string
	editStatus      string
	editDue         string
	editClearDue    bool
	editProject     string
	editTags        []string
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "desc", "D", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority (low, medium, high, urgent)")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "New status (todo, in-progress, completed)")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().StringVarP(&editProject, "project", "P", "", "New project id (use \"none\" to detach)")
	editCmd.Flags().StringSliceVarP(&editTags, "tags", "t", nil, "Replacement tags")
}

func runEdit(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var patch store.TaskPatch

	if cmd.Flags().Changed("title") {
		title := strings.TrimSpace(editTitle)
		if title == "" {
			return fmt.Errorf("task title is required")
		}
		patch.Title = &title
	}
	if cmd.Flags().Changed("desc") {
		patch.Description = &editDescription
	}
	if cmd.Flags().Changed("priority") {
		p := model.Priority(editPriority)
		if !p.IsValid() {
			return fmt.Errorf("invalid priority %q", editPriority)
		}
		patch.Priority = &p
	}
	if cmd.Flags().Changed("status") {
		s := model.Status(editStatus)
		if !s.IsValid() {
			return fmt.Errorf("invalid status %q", editStatus)
		}
		patch.Status = &s
	}
	if editClearDue {
		patch.ClearDueDate = true
	} else if cmd.Flags().Changed("due") {
		due, err := time.Parse("2006-01-02", editDue)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", editDue, err)
		}
		patch.DueDate = &due
	}
	if cmd.Flags().Changed("project") {
		project := editProject
		if project == "none" {
			project = ""
		}
		patch.ProjectID = &project
	}
	if cmd.Flags().Changed("tags") {
		patch.Tags = editTags
	}

	task, err := st.UpdateTask(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("✓ Updated: %q\n", task.Title)
	return nil
}
