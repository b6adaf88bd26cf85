// Package query derives presentation views from store snapshots. All
// functions are pure: they never mutate their inputs and never touch the
// store.
package query

import (
	"sort"

	"github.com/apper-canvas/flowforge/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All is the wildcard accepted by the filters
const All = "all"

// SortKey selects a task ordering
type SortKey string

const (
	SortByPriority SortKey = "priority"
	SortByDueDate  SortKey = "dueDate"
	SortByTitle    SortKey = "title"
	SortByCreated  SortKey = "created"
)

// FilterByStatus keeps tasks whose status equals the argument; "all"
// returns the input order unchanged.
func FilterByStatus(tasks []model.Task, status string) []model.Task {
	if status == All {
		return tasks
	}
	out := []model.Task{}
	for _, t := range tasks {
		if string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

// FilterByProject keeps tasks whose project reference equals the
// argument; "all" returns the input order unchanged.
func FilterByProject(tasks []model.Task, projectID string) []model.Task {
	if projectID == All {
		return tasks
	}
	out := []model.Task{}
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks returns a new ordered slice; the input is untouched and equal
// elements keep their relative order.
//
//   - priority: descending by rank, urgent first
//   - dueDate: ascending; tasks with no due date sort after all dated ones
//   - title: ascending, locale-aware
//   - created (and any unrecognized key): descending, newest first
func SortTasks(tasks []model.Task, key SortKey) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	switch key {
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortByTitle:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// ProjectDisplay is what the presentation layer needs to label a task's
// project.
type ProjectDisplay struct {
	Name  string
	Color string
}

// ResolveProjectDisplay looks up a project for display. Empty and
// dangling references resolve to the default label and color; it never
// fails.
func ResolveProjectDisplay(projectID string, projects []model.Project) ProjectDisplay {
	for _, p := range projects {
		if p.ID == projectID {
			d := ProjectDisplay{Name: p.Name, Color: p.Color}
			if d.Name == "" {
				d.Name = "No Project"
			}
			if d.Color == "" {
				d.Color = model.DefaultProjectColor
			}
			return d
		}
	}
	return ProjectDisplay{Name: "No Project", Color: model.DefaultProjectColor}
}

// Stats are live task counts for a project, computed from the snapshot.
// The stored Project aggregates are never consulted.
type Stats struct {
	Total     int
	Completed int
}

// ProjectStats counts tasks for a project; "all" counts the whole
// snapshot.
func ProjectStats(tasks []model.Task, projectID string) Stats {
	var s Stats
	for _, t := range FilterByProject(tasks, projectID) {
		s.Total++
		if t.Status == model.StatusCompleted {
			s.Completed++
		}
	}
	return s
}
