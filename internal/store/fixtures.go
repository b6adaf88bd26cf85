package store

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/apper-canvas/flowforge/internal/model"
)

//go:embed fixtures/task.json fixtures/project.json fixtures/user.json
var fixturesFS embed.FS

// Fixtures returns the built-in demo collections
func Fixtures() ([]model.Task, []model.Project, []model.User, error) {
	var tasks []model.Task
	if err := loadFixture("fixtures/task.json", &tasks); err != nil {
		return nil, nil, nil, err
	}
	var projects []model.Project
	if err := loadFixture("fixtures/project.json", &projects); err != nil {
		return nil, nil, nil, err
	}
	var users []model.User
	if err := loadFixture("fixtures/user.json", &users); err != nil {
		return nil, nil, nil, err
	}
	return tasks, projects, users, nil
}

func loadFixture(name string, v any) error {
	data, err := fixturesFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return nil
}

// SeedFixtures installs the built-in collections into s
func SeedFixtures(ctx context.Context, s Store) error {
	tasks, projects, users, err := Fixtures()
	if err != nil {
		return err
	}
	return s.Seed(ctx, tasks, projects, users)
}
