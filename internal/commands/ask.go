package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/assistant"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&AskCmd{})
}

// AskCmd sends a question to the assistant. By default the question goes
// through the backend, which stores the interaction in the history. With
// --local the reply is produced on this machine: by OpenAI when an API key is
// configured, by the rule-based responder otherwise.
type AskCmd struct {
	local bool

	// responder overrides the local responder (for testing).
	responder assistant.Responder
}

// SetResponder injects a responder (for testing).
func (c *AskCmd) SetResponder(r assistant.Responder) {
	c.responder = r
}

func (c *AskCmd) Name() string      { return "ask" }
func (c *AskCmd) Aliases() []string { return nil }
func (c *AskCmd) Synopsis() string  { return "Ask the assistant about your tasks" }
func (c *AskCmd) Usage() string     { return "taskdeck ask [--local] <message...>" }
func (c *AskCmd) NeedsAuth() bool   { return true }

func (c *AskCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.local, "local", false, "")
}

func (c *AskCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}

	// The assistant answers relative to the user's current tasks, so fetch
	// them first. In local mode a fetch failure degrades to an answer
	// without task context instead of failing the question.
	taskCtx, err := taskContext(ctx, svc)
	if err != nil && !c.local {
		return backendFail(errOut, err)
	}

	if c.local {
		reply, err := c.localResponder(cfg).Respond(ctx, message, taskCtx)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		fmt.Fprintln(out, reply)
		return exitcode.Success
	}

	ans, err := svc.Ask(ctx, message, taskCtx)
	if err != nil {
		return backendFail(errOut, err)
	}
	fmt.Fprintln(out, ans.Response)
	return exitcode.Success
}

func (c *AskCmd) localResponder(cfg *config.Config) assistant.Responder {
	if c.responder != nil {
		return c.responder
	}
	if cfg.OpenAIKey != "" {
		return assistant.NewOpenAIResponder(cfg.OpenAIKey, "")
	}
	return &assistant.RuleResponder{}
}

// taskContext builds the task summaries sent along with the question.
func taskContext(ctx context.Context, svc service.Service) ([]service.TaskContext, error) {
	tasks, err := svc.ListTasks(ctx, service.Filter{})
	if err != nil {
		return nil, err
	}
	summaries := make([]service.TaskContext, len(tasks))
	for i, t := range tasks {
		summaries[i] = service.TaskContext{ID: t.ID, Title: t.Title, Status: t.Status}
	}
	return summaries, nil
}
