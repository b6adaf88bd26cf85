package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/internal/model"
	"github.com/apper-canvas/flowforge/internal/query"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, and delete projects for organizing tasks.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  flowforge project new "Work"
  flowforge project new "Personal" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project (its tasks are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectColor string

func init() {
	projectNewCmd.Flags().StringVarP(&projectColor, "color", "c", "", "Project color (hex, defaults to indigo)")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	draft := model.NewProject(args[0])
	if projectColor != "" {
		draft.Color = projectColor
	}

	project, err := st.CreateProject(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", project.Name, project.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	projects, err := st.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	tasks, err := st.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-22s  %-20s  %s\n", "ID", "Name", "Done/Total")
	fmt.Println(strings.Repeat("─", 58))

	for _, p := range projects {
		stats := query.ProjectStats(tasks, p.ID)
		fmt.Printf("  %-22s  %-20s  %d/%d\n", p.ID, p.Name, stats.Completed, stats.Total)
	}

	unassigned := query.ProjectStats(tasks, "")
	if unassigned.Total > 0 {
		fmt.Printf("  %-22s  %-20s  %d/%d\n", "-", "No Project", unassigned.Completed, unassigned.Total)
	}

	fmt.Println(strings.Repeat("─", 58))
	fmt.Printf("  %d projects, %d tasks\n\n", len(projects), len(tasks))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	cfg, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	project, err := st.GetProject(ctx, args[0])
	if err != nil {
		return fmt.Errorf("project not found: %s", args[0])
	}

	if cfg.ConfirmDelete {
		fmt.Printf("About to delete project %q. Its tasks are kept without a project.\n", project.Name)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if _, err := st.DeleteProject(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("Deleted project: %s\n", project.Name)
	return nil
}
