// Package service defines the backend-agnostic interface for taskdeck
// operations and the normalized types they exchange.
package service

// Task is a fully normalized task. No field is ever absent: missing wire
// fields come back as the documented defaults (empty description, priority
// "medium", status "todo", empty due date and user id).
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     string // ISO date, empty when the task has no due date
	Priority    string // "low", "medium" or "high"
	Status      string // "todo", "in-progress" or "completed"
	CreatedAt   string
	UpdatedAt   string
	UserID      string
}

// Filter narrows a task listing. Empty fields are dropped from the query.
type Filter struct {
	Status    string
	DueAfter  string // inclusive lower bound on due date
	DueBefore string // inclusive upper bound on due date
}

// TaskInput carries the caller-supplied fields for task creation.
// Empty optional fields are omitted from the request so the backend applies
// its own defaults.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      string
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
	Status      *string
}

// Profile is the editable user profile.
type Profile struct {
	Name      string
	AvatarURL string
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name      *string
	AvatarURL *string
}

// Settings are the persisted UI and assistant preferences.
type Settings struct {
	Theme           string
	AIResponseStyle string
	Language        string
}

// SettingsPatch is a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	Theme           *string
	AIResponseStyle *string
	Language        *string
}

// HistoryItem is one stored assistant interaction, normalized like Task.
type HistoryItem struct {
	ID        string
	Title     string
	Query     string
	Response  string
	CreatedAt string
	UserID    string
}

// TaskContext is the task summary sent along with an assistant question.
type TaskContext struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Answer is the assistant reply plus the id of the stored history entry.
type Answer struct {
	Response  string
	HistoryID string
}
