package api

import (
	"context"
	"net/http"

	"taskdeck/internal/service"
)

var _ service.Service = (*Client)(nil)

// Ask sends a question plus a summary of the caller's tasks to the backend
// assistant. The backend stores the interaction and returns the new history
// entry's id alongside the reply.
func (c *Client) Ask(ctx context.Context, message string, tasks []service.TaskContext) (service.Answer, error) {
	if tasks == nil {
		tasks = []service.TaskContext{}
	}
	body := map[string]any{
		"message": message,
		"tasks":   tasks,
	}

	var res struct {
		Response  string     `json:"response"`
		HistoryID flexString `json:"historyId"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai/ask/", body, requestOptions{}, &res); err != nil {
		return service.Answer{}, err
	}
	return service.Answer{Response: res.Response, HistoryID: string(res.HistoryID)}, nil
}

// History lists stored assistant interactions, newest first.
func (c *Client) History(ctx context.Context) ([]service.HistoryItem, error) {
	var res []wireHistory
	if err := c.do(ctx, http.MethodGet, "/ai/history/", nil, requestOptions{}, &res); err != nil {
		return nil, err
	}

	items := make([]service.HistoryItem, len(res))
	for i, w := range res {
		items[i] = normalizeHistory(w)
	}
	return items, nil
}

// DeleteHistory removes one assistant interaction. The backend answers 204.
func (c *Client) DeleteHistory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ai/history/"+id+"/", nil, requestOptions{}, nil)
}
