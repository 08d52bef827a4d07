// Package assistant provides the local responders used by `taskdeck ask
// --local`: a deterministic rule-based responder that works offline, and an
// OpenAI-backed responder used when an API key is configured.
package assistant

import (
	"context"

	"taskdeck/internal/service"
)

// Responder answers a question about the user's tasks without going through
// the backend.
type Responder interface {
	Respond(ctx context.Context, message string, tasks []service.TaskContext) (string, error)
}
