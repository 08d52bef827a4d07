package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/service"
)

func respond(t *testing.T, msg string, tasks []service.TaskContext) string {
	t.Helper()
	r := &RuleResponder{}
	out, err := r.Respond(context.Background(), msg, tasks)
	require.NoError(t, err)
	return out
}

func TestRuleResponderEmptyMessage(t *testing.T) {
	out := respond(t, "   ", nil)
	assert.Contains(t, out, "Ask me something")
}

func TestRuleResponderNext(t *testing.T) {
	tasks := []service.TaskContext{
		{ID: "1", Title: "shipped", Status: "completed"},
		{ID: "2", Title: "write report", Status: "todo"},
	}
	out := respond(t, "What should I do NEXT?", tasks)
	assert.Equal(t, `Based on your open tasks, start with "write report".`, out)

	out = respond(t, "next", []service.TaskContext{{ID: "1", Status: "completed"}})
	assert.Contains(t, out, "no open tasks")
}

func TestRuleResponderCounts(t *testing.T) {
	tasks := []service.TaskContext{
		{ID: "1", Status: "todo"},
		{ID: "2", Status: "in-progress"},
		{ID: "3", Status: "completed"},
	}
	assert.Equal(t, "You have 2 open and 1 completed tasks.", respond(t, "how many tasks do I have", tasks))
	assert.Equal(t, "You have completed 1 tasks. Keep it up.", respond(t, "what have I completed", tasks))
}

func TestRuleResponderEcho(t *testing.T) {
	out := respond(t, "  tell me a joke  ", nil)
	assert.Equal(t, "Assistant: tell me a joke", out)

	tasks := []service.TaskContext{
		{ID: "1", Title: "buy milk"},
		{ID: "2", Title: "  "},
	}
	out = respond(t, "hello", tasks)
	assert.Equal(t, "Assistant: hello Relevant tasks: buy milk, Task #2.", out)
}
