package models

import (
	"regexp"
	"time"
)

// DefaultProjectColor is applied when a project is created without a color.
const DefaultProjectColor = "#3B82F6"

// ProjectPalette lists the colors offered by the project form.
var ProjectPalette = []string{
	"#3B82F6", // blue
	"#EF4444", // red
	"#10B981", // emerald
	"#F59E0B", // amber
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#84CC16", // lime
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor reports whether c is a #RRGGBB color value.
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// User is an account that owns projects and tasks.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the subset of user fields returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips the credential fields.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Project groups tasks of a single owner.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	ProjectID   string       `json:"project_id"`
	UserID      string       `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskStatus is the board column a task sits in.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses enumerates the statuses in board order.
var TaskStatuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusDone}

// ParseTaskStatus normalizes raw into a known status. The legacy value
// "todo" maps to StatusNotStarted.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	switch raw {
	case "todo", string(StatusNotStarted):
		return StatusNotStarted, true
	case string(StatusInProgress):
		return StatusInProgress, true
	case string(StatusDone):
		return StatusDone, true
	}
	return "", false
}

// TaskPriority ranks tasks.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ParseTaskPriority validates raw as a known priority.
func ParseTaskPriority(raw string) (TaskPriority, bool) {
	switch p := TaskPriority(raw); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// TaskFilter narrows task listings. Empty fields do not filter.
type TaskFilter struct {
	ProjectID string
	Status    TaskStatus
	Priority  TaskPriority
}

// ProjectChanges holds the fields of a project update; nil keeps the
// stored value.
type ProjectChanges struct {
	Name        *string
	Description *string
	Color       *string
}

// TaskChanges holds the fields of a task update; nil keeps the stored
// value. ClearDueDate removes the due date.
type TaskChanges struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}
