package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/service"
)

var statusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Change a task's status",
	Long: `Move a task to todo, in-progress or completed. Completion time is
tracked automatically: entering completed stamps it, leaving clears it.

Examples:
  flowforge status 1755076800000-b1c2d3 in-progress
  flowforge status 1755076800000-b1c2d3 completed`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task between completed and todo",
	Long: `Mark a task as completed, or reopen it if it already is.

Examples:
  flowforge done 1755076800000-b1c2d3`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	status := model.Status(args[1])
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q (todo, in-progress, completed)", args[1])
	}

	svc := service.NewTaskService(st)
	task, err := svc.ChangeStatus(context.Background(), args[0], status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("✓ %q is now %s\n", task.Title, task.Status)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewTaskService(st)
	task, err := svc.ToggleCompleted(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if task.Status == model.StatusCompleted {
		fmt.Printf("✓ Completed: %q\n", task.Title)
	} else {
		fmt.Printf("○ Reopened: %q\n", task.Title)
	}
	return nil
}
