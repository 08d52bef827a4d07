package service

import (
	"context"

	"taskdeck/internal/session"
)

// Service defines the interface for backend operations.
// All HTTP calls go through this interface; commands never build requests
// directly.
type Service interface {
	// Register creates an account and persists the returned session.
	Register(ctx context.Context, email, password, name string) (*session.Session, error)

	// Login authenticates and persists the returned session.
	Login(ctx context.Context, email, password string) (*session.Session, error)

	// Logout revokes the refresh token server-side (best effort) and always
	// clears the local session.
	Logout(ctx context.Context) error

	// CurrentUser fetches the authenticated user and updates the stored
	// session's user field.
	CurrentUser(ctx context.Context) (session.User, error)

	// ListTasks returns the user's tasks matching the filter.
	ListTasks(ctx context.Context, f Filter) ([]Task, error)

	// CreateTask creates a task and returns the normalized result.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, p TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error

	// Profile returns the user's profile.
	Profile(ctx context.Context) (Profile, error)

	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, p ProfilePatch) (Profile, error)

	// Settings returns the user's settings.
	Settings(ctx context.Context) (Settings, error)

	// UpdateSettings applies a partial settings update.
	UpdateSettings(ctx context.Context, p SettingsPatch) (Settings, error)

	// Ask sends a question plus task context to the assistant.
	Ask(ctx context.Context, message string, tasks []TaskContext) (Answer, error)

	// History lists stored assistant interactions, newest first.
	History(ctx context.Context) ([]HistoryItem, error)

	// DeleteHistory removes one assistant interaction.
	DeleteHistory(ctx context.Context, id string) error
}
