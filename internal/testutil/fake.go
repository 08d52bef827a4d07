// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ErrBadCredentials is returned for a login with the wrong password.
var ErrBadCredentials = errors.New("invalid email or password")

// Fake is an in-memory implementation of service.Service for testing.
type Fake struct {
	mu       sync.RWMutex
	tasks    []service.Task
	history  []service.HistoryItem
	profile  service.Profile
	settings service.Settings
	user     session.User
	current  *session.Session
	password string

	// Error injection for testing
	LoginErr          error
	RegisterErr       error
	LogoutErr         error
	CurrentUserErr    error
	ListTasksErr      error
	CreateTaskErr     error
	UpdateTaskErr     error
	DeleteTaskErr     error
	ProfileErr        error
	UpdateProfileErr  error
	SettingsErr       error
	UpdateSettingsErr error
	AskErr            error
	HistoryErr        error
	DeleteHistoryErr  error
}

var _ service.Service = (*Fake)(nil)

// NewFake creates a Fake with one registered account and default settings.
func NewFake() *Fake {
	return &Fake{
		user:     session.User{ID: "1", Email: "a@b.com", Name: "Ada"},
		password: "pw",
		profile:  service.Profile{Name: "Ada"},
		settings: service.Settings{Theme: "light", AIResponseStyle: "balanced", Language: "en"},
	}
}

// AddTask seeds a task.
func (f *Fake) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	f.tasks = append(f.tasks, t)
}

// AddHistory seeds an assistant history entry.
func (f *Fake) AddHistory(h service.HistoryItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, h)
}

// Session returns the fake's current session, nil when logged out.
func (f *Fake) Session() *session.Session {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Login implements service.Service.
func (f *Fake) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if email != f.user.Email || password != f.password {
		return nil, ErrBadCredentials
	}
	f.current = &session.Session{AccessToken: "A1", RefreshToken: "R1", User: f.user}
	return f.current, nil
}

// Register implements service.Service.
func (f *Fake) Register(ctx context.Context, email, password, name string) (*session.Session, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = session.User{ID: uuid.NewString(), Email: email, Name: name}
	f.password = password
	f.current = &session.Session{AccessToken: "A1", RefreshToken: "R1", User: f.user}
	return f.current, nil
}

// Logout implements service.Service.
func (f *Fake) Logout(ctx context.Context) error {
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	return nil
}

// CurrentUser implements service.Service.
func (f *Fake) CurrentUser(ctx context.Context) (session.User, error) {
	if f.CurrentUserErr != nil {
		return session.User{}, f.CurrentUserErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}

// ListTasks implements service.Service.
func (f *Fake) ListTasks(ctx context.Context, flt service.Filter) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var result []service.Task
	for _, t := range f.tasks {
		if flt.Status != "" && t.Status != flt.Status {
			continue
		}
		if flt.DueAfter != "" && (t.DueDate == "" || t.DueDate < flt.DueAfter) {
			continue
		}
		if flt.DueBefore != "" && (t.DueDate == "" || t.DueDate > flt.DueBefore) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *Fake) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      in.Status,
		UserID:      f.user.ID,
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *Fake) UpdateTask(ctx context.Context, id string, p service.TaskPatch) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.DueDate != nil {
			t.DueDate = *p.DueDate
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.Status != nil {
			t.Status = *p.Status
		}
		return *t, nil
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *Fake) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Profile implements service.Service.
func (f *Fake) Profile(ctx context.Context) (service.Profile, error) {
	if f.ProfileErr != nil {
		return service.Profile{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.profile, nil
}

// UpdateProfile implements service.Service.
func (f *Fake) UpdateProfile(ctx context.Context, p service.ProfilePatch) (service.Profile, error) {
	if f.UpdateProfileErr != nil {
		return service.Profile{}, f.UpdateProfileErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Name != nil {
		f.profile.Name = *p.Name
	}
	if p.AvatarURL != nil {
		f.profile.AvatarURL = *p.AvatarURL
	}
	return f.profile, nil
}

// Settings implements service.Service.
func (f *Fake) Settings(ctx context.Context) (service.Settings, error) {
	if f.SettingsErr != nil {
		return service.Settings{}, f.SettingsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.settings, nil
}

// UpdateSettings implements service.Service.
func (f *Fake) UpdateSettings(ctx context.Context, p service.SettingsPatch) (service.Settings, error) {
	if f.UpdateSettingsErr != nil {
		return service.Settings{}, f.UpdateSettingsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Theme != nil {
		f.settings.Theme = *p.Theme
	}
	if p.AIResponseStyle != nil {
		f.settings.AIResponseStyle = *p.AIResponseStyle
	}
	if p.Language != nil {
		f.settings.Language = *p.Language
	}
	return f.settings, nil
}

// Ask implements service.Service. The reply echoes the message the same way
// the backend stub does.
func (f *Fake) Ask(ctx context.Context, message string, tasks []service.TaskContext) (service.Answer, error) {
	if f.AskErr != nil {
		return service.Answer{}, f.AskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	title := strings.Join(strings.Fields(message), " ")
	if len(title) > 80 {
		title = title[:80]
	}
	reply := "Assistant: " + strings.TrimSpace(message)
	f.history = append(f.history, service.HistoryItem{
		ID:       id,
		Title:    title,
		Query:    message,
		Response: reply,
		UserID:   f.user.ID,
	})
	return service.Answer{Response: reply, HistoryID: id}, nil
}

// History implements service.Service.
func (f *Fake) History(ctx context.Context) ([]service.HistoryItem, error) {
	if f.HistoryErr != nil {
		return nil, f.HistoryErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.HistoryItem, len(f.history))
	copy(result, f.history)
	return result, nil
}

// DeleteHistory implements service.Service.
func (f *Fake) DeleteHistory(ctx context.Context, id string) error {
	if f.DeleteHistoryErr != nil {
		return f.DeleteHistoryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.history {
		if f.history[i].ID == id {
			f.history = append(f.history[:i], f.history[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
