package model

// User is a directory entry. The collection is loaded and served but no
// business logic consumes it yet.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}
