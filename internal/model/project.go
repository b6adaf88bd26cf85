package model

// DefaultProjectColor is used when a project has no color and for
// tasks whose project reference does not resolve.
const DefaultProjectColor = "#6366f1"

// Project groups tasks for display
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	// Stored aggregates. Initialized to zero at creation and never
	// recomputed by the store; live counts come from query.ProjectStats.
	TaskCount      int `json:"taskCount"`
	CompletedCount int `json:"completedCount"`
}

// NewProject returns a project draft with the default color
func NewProject(name string) Project {
	return Project{
		Name:  name,
		Color: DefaultProjectColor,
	}
}
