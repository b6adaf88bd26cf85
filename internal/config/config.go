package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds user preferences
type Config struct {
	Store           string `yaml:"store" json:"store"`                       // Store backend: memory or sqlite
	DBPath          string `yaml:"db_path" json:"db_path"`                   // SQLite database path (sqlite backend only)
	SimulateLatency bool   `yaml:"simulate_latency" json:"simulate_latency"` // Emulate remote-backend delays (memory backend only)
	Listen          string `yaml:"listen" json:"listen"`                     // API server listen address
	DefaultSort     string `yaml:"default_sort" json:"default_sort"`         // Initial task ordering: priority, dueDate, title, created
	ConfirmDelete   bool   `yaml:"confirm_delete" json:"confirm_delete"`     // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".flowforge", "logs", "flowforge.log")
	}

	return &Config{
		Store:           getEnv("FLOWFORGE_STORE", StoreMemory),
		DBPath:          getEnv("FLOWFORGE_DB", ""),
		SimulateLatency: getEnv("FLOWFORGE_SIMULATE_LATENCY", "false") == "true",
		Listen:          getEnv("FLOWFORGE_LISTEN", ":8080"),
		DefaultSort:     "created",
		ConfirmDelete:   true,
		LogLevel:        getEnv("FLOWFORGE_LOG_LEVEL", "INFO"),
		LogFile:         getEnv("FLOWFORGE_LOG_FILE", logPath),
		LogConsole:      getEnv("FLOWFORGE_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flowforge", "config.yaml"), nil
}

// Load loads config from ~/.flowforge/config.yaml
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// Return defaults if no config file
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.flowforge/config.yaml
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
