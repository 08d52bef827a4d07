package assistant

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/service"
)

// RuleResponder is the offline fallback. Replies are deterministic functions
// of the message and task context so they are stable across runs.
type RuleResponder struct{}

var _ Responder = (*RuleResponder)(nil)

// Respond implements Responder.
func (r *RuleResponder) Respond(_ context.Context, message string, tasks []service.TaskContext) (string, error) {
	msg := strings.ToLower(strings.TrimSpace(message))

	switch {
	case msg == "":
		return "Ask me something about your tasks, for example: what should I work on next?", nil
	case strings.Contains(msg, "next") || strings.Contains(msg, "priorit"):
		if t, ok := firstOpen(tasks); ok {
			return fmt.Sprintf("Based on your open tasks, start with %q.", t.Title), nil
		}
		return "You have no open tasks. Add one with: taskdeck add <title>.", nil
	case strings.Contains(msg, "how many") || strings.Contains(msg, "count"):
		open, done := tally(tasks)
		return fmt.Sprintf("You have %d open and %d completed tasks.", open, done), nil
	case strings.Contains(msg, "done") || strings.Contains(msg, "complete"):
		_, done := tally(tasks)
		return fmt.Sprintf("You have completed %d tasks. Keep it up.", done), nil
	default:
		return fmt.Sprintf("Assistant: %s%s", strings.TrimSpace(message), taskSummary(tasks)), nil
	}
}

func firstOpen(tasks []service.TaskContext) (service.TaskContext, bool) {
	for _, t := range tasks {
		if t.Status != "completed" {
			return t, true
		}
	}
	return service.TaskContext{}, false
}

func tally(tasks []service.TaskContext) (open, done int) {
	for _, t := range tasks {
		if t.Status == "completed" {
			done++
		} else {
			open++
		}
	}
	return open, done
}

// taskSummary mirrors the backend stub: a trailing sentence listing the
// titles of the tasks sent along with the question.
func taskSummary(tasks []service.TaskContext) string {
	if len(tasks) == 0 {
		return ""
	}
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			title = fmt.Sprintf("Task #%s", t.ID)
		}
		titles = append(titles, title)
	}
	return fmt.Sprintf(" Relevant tasks: %s.", strings.Join(titles, ", "))
}
