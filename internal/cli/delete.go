package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its id.

Examples:
  flowforge delete 1755076800000-b1c2d3
  flowforge rm 1755076800000-b1c2d3`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	task, err := st.GetTask(ctx, args[0])
	if err != nil {
		return fmt.Errorf("task not found: %s", args[0])
	}

	if cfg.ConfirmDelete {
		fmt.Printf("About to delete: %q (id: %s)\n", task.Title, task.ID)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	deleted, err := st.DeleteTask(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted: %q\n", deleted.Title)
	return nil
}
