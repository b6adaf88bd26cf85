package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/apper-canvas/flowforge/internal/config"
	"github.com/apper-canvas/flowforge/internal/logger"
	"github.com/apper-canvas/flowforge/internal/store"
	"github.com/apper-canvas/flowforge/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "flowforge",
	Short: "FlowForge - task management from the terminal",
	Long: `FlowForge organizes tasks under projects with priorities, due dates
and status tracking.

Run 'flowforge' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		// CLI flags override the config file
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.Config{
			Level:    logger.ParseLevel(cfg.LogLevel),
			FilePath: cfg.LogFile,
			MaxSize:  10 * 1024 * 1024, // 10MB
			Console:  cfg.LogConsole,
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("FlowForge started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := openStore()
		if err != nil {
			logger.Error("Failed to open store", logger.F("error", err))
			return err
		}
		defer func() {
			_ = st.Close()
		}()

		logger.Info("Launching TUI", logger.F("backend", cfg.Store))
		m := tui.NewModel(st, cfg.DefaultSort)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("FlowForge exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// openStore builds the configured store backend with fixtures loaded.
// The memory backend starts from the fixtures on every invocation; the
// sqlite backend seeds them once and persists between runs.
func openStore() (*config.Config, store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	var st store.Store
	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.DBPath
		if path == "" {
			path, err = store.DefaultDBPath()
			if err != nil {
				return nil, nil, err
			}
		}
		st, err = store.OpenSQLite(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
	default:
		opts := []store.MemoryOption{}
		if cfg.SimulateLatency {
			opts = append(opts, store.WithLatency(store.SimulatedLatency()))
		}
		st = store.NewMemory(opts...)
	}

	if err := store.SeedFixtures(context.Background(), st); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
	}
	return cfg, st, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(serveCmd)
}
