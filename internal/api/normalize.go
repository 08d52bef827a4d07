package api

import (
	"encoding/json"

	"taskdeck/internal/service"
	"taskdeck/internal/session"
)

// flexString decodes a JSON value that may arrive as a string, a number, or
// null, always yielding its string form. The backend serializes some ids as
// integers and some as strings; callers only ever see strings.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// wireUser is the user object as the backend sends it.
type wireUser struct {
	ID    flexString `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
}

// wireTask is a task as the backend sends it. Optional fields may be missing
// entirely; normalizeTask fills the defaults.
type wireTask struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *string    `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	UserID      flexString `json:"userId"`
}

// wireHistory tolerates both spellings the backend has used for the creation
// timestamp and the owning user id.
type wireHistory struct {
	ID             flexString `json:"id"`
	Title          string     `json:"title"`
	Query          string     `json:"query"`
	Response       string     `json:"response"`
	CreatedAt      string     `json:"createdAt"`
	CreatedAtSnake string     `json:"created_at"`
	UserID         flexString `json:"userId"`
	UserIDSnake    flexString `json:"user_id"`
}

// normalizeUser converts a wire user. A user with no name is shown by email.
func normalizeUser(w wireUser) session.User {
	name := w.Name
	if name == "" {
		name = w.Email
	}
	return session.User{
		ID:    string(w.ID),
		Email: w.Email,
		Name:  name,
	}
}

// normalizeTask fills the documented defaults so no field is ever absent.
func normalizeTask(w wireTask) service.Task {
	t := service.Task{
		ID:          string(w.ID),
		Title:       w.Title,
		Description: w.Description,
		Priority:    w.Priority,
		Status:      w.Status,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		UserID:      string(w.UserID),
	}
	if w.DueDate != nil {
		t.DueDate = *w.DueDate
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	return t
}

func normalizeHistory(w wireHistory) service.HistoryItem {
	created := w.CreatedAt
	if created == "" {
		created = w.CreatedAtSnake
	}
	userID := string(w.UserID)
	if userID == "" {
		userID = string(w.UserIDSnake)
	}
	return service.HistoryItem{
		ID:        string(w.ID),
		Title:     w.Title,
		Query:     w.Query,
		Response:  w.Response,
		CreatedAt: created,
		UserID:    userID,
	}
}
