package api

import (
	"context"
	"net/http"
	"net/url"

	"taskdeck/internal/service"
)

// ListTasks returns the user's tasks matching the filter. Empty filter fields
// are dropped from the query string entirely.
func (c *Client) ListTasks(ctx context.Context, f service.Filter) ([]service.Task, error) {
	q := buildQuery(map[string]string{
		"status":        f.Status,
		"due_date__gte": f.DueAfter,
		"due_date__lte": f.DueBefore,
	})

	var res []wireTask
	err := c.do(ctx, http.MethodGet, "/tasks/", nil, requestOptions{query: q}, &res)
	if err != nil {
		return nil, err
	}

	tasks := make([]service.Task, len(res))
	for i, w := range res {
		tasks[i] = normalizeTask(w)
	}
	return tasks, nil
}

// CreateTask creates a task. Empty optional fields are omitted so the backend
// applies its own defaults.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	body := map[string]string{"title": in.Title}
	if in.Description != "" {
		body["description"] = in.Description
	}
	if in.DueDate != "" {
		body["dueDate"] = in.DueDate
	}
	if in.Priority != "" {
		body["priority"] = in.Priority
	}
	if in.Status != "" {
		body["status"] = in.Status
	}

	var res wireTask
	if err := c.do(ctx, http.MethodPost, "/tasks/", body, requestOptions{}, &res); err != nil {
		return service.Task{}, err
	}
	return normalizeTask(res), nil
}

// UpdateTask applies a partial update. Only non-nil patch fields are sent.
func (c *Client) UpdateTask(ctx context.Context, id string, p service.TaskPatch) (service.Task, error) {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.DueDate != nil {
		// An explicit empty due date clears it server-side.
		if *p.DueDate == "" {
			body["dueDate"] = nil
		} else {
			body["dueDate"] = *p.DueDate
		}
	}
	if p.Priority != nil {
		body["priority"] = *p.Priority
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}

	var res wireTask
	err := c.do(ctx, http.MethodPatch, "/tasks/"+id+"/", body, requestOptions{}, &res)
	if err != nil {
		return service.Task{}, err
	}
	return normalizeTask(res), nil
}

// DeleteTask deletes a task. The backend answers 204.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id+"/", nil, requestOptions{}, nil)
}

// buildQuery encodes the non-empty values, dropping the rest.
func buildQuery(params map[string]string) string {
	v := url.Values{}
	for key, val := range params {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v.Encode()
}
