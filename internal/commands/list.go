package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

// validStatuses are the task statuses the backend accepts.
var validStatuses = map[string]bool{
	"todo":        true,
	"in-progress": true,
	"completed":   true,
}

// validPriorities are the task priorities the backend accepts.
var validPriorities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskdeck` (no args) and `taskdeck list`.
type ListCmd struct {
	status    string
	dueAfter  string
	dueBefore string
}

// SetStatus sets the status filter (for testing).
func (c *ListCmd) SetStatus(s string) {
	c.status = s
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskdeck list [--status <s>] [--due-after <date>] [--due-before <date>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.dueAfter, "due-after", "", "")
	fs.StringVar(&c.dueBefore, "due-before", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.status != "" && !validStatuses[c.status] {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx, service.Filter{
		Status:    c.status,
		DueAfter:  c.dueAfter,
		DueBefore: c.dueBefore,
	})
	if err != nil {
		return backendFail(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	for _, t := range tasks {
		output.FormatTask(out, t)
	}
	return exitcode.Success
}
