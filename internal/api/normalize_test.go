package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var w wireTask
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "userId": "u-9"}`), &w))
	assert.Equal(t, flexString("42"), w.ID)
	assert.Equal(t, flexString("u-9"), w.UserID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &w))
	assert.Equal(t, flexString(""), w.ID)

	// Large ids must not lose precision through a float round-trip.
	require.NoError(t, json.Unmarshal([]byte(`{"id": 9007199254740993}`), &w))
	assert.Equal(t, flexString("9007199254740993"), w.ID)
}

func TestNormalizeTaskDefaults(t *testing.T) {
	var w wireTask
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "title": "buy milk"}`), &w))

	task := normalizeTask(w)
	assert.Equal(t, "3", task.ID)
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, "", task.DueDate)
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "", task.UserID)
}

func TestNormalizeTaskFull(t *testing.T) {
	raw := `{
		"id": 8, "title": "ship", "description": "v2",
		"dueDate": "2026-09-01", "priority": "high", "status": "in-progress",
		"createdAt": "2026-08-01T10:00:00Z", "updatedAt": "2026-08-02T10:00:00Z",
		"userId": 7
	}`
	var w wireTask
	require.NoError(t, json.Unmarshal([]byte(raw), &w))

	task := normalizeTask(w)
	assert.Equal(t, "2026-09-01", task.DueDate)
	assert.Equal(t, "high", task.Priority)
	assert.Equal(t, "in-progress", task.Status)
	assert.Equal(t, "7", task.UserID)
	assert.Equal(t, "2026-08-01T10:00:00Z", task.CreatedAt)
}

func TestNormalizeTaskNullDueDate(t *testing.T) {
	var w wireTask
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "dueDate": null}`), &w))
	assert.Equal(t, "", normalizeTask(w).DueDate)
}

func TestNormalizeUserNameFallback(t *testing.T) {
	u := normalizeUser(wireUser{ID: "7", Email: "a@b.com"})
	assert.Equal(t, "a@b.com", u.Name)

	u = normalizeUser(wireUser{ID: "7", Email: "a@b.com", Name: "Ada"})
	assert.Equal(t, "Ada", u.Name)
}

func TestNormalizeHistorySpellings(t *testing.T) {
	var w wireHistory
	require.NoError(t, json.Unmarshal([]byte(
		`{"id": 5, "title": "t", "created_at": "2026-08-20", "user_id": 7}`), &w))

	h := normalizeHistory(w)
	assert.Equal(t, "5", h.ID)
	assert.Equal(t, "2026-08-20", h.CreatedAt)
	assert.Equal(t, "7", h.UserID)

	// camelCase wins when both spellings are present
	require.NoError(t, json.Unmarshal([]byte(
		`{"id": 5, "createdAt": "camel", "created_at": "snake"}`), &w))
	assert.Equal(t, "camel", normalizeHistory(w).CreatedAt)
}
