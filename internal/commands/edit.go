package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd applies a partial update to a task. Only flags the user actually
// passed are sent, so an empty --due clears the due date while an omitted
// --due leaves it alone.
type EditCmd struct {
	title       string
	description string
	dueDate     string
	priority    string
	status      string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update a task" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [--title <t>] [--desc <text>] [--due <date>] [--priority <p>] [--status <s>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.dueDate, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := strings.TrimSpace(args[0])

	if c.priority != "" && !validPriorities[c.priority] {
		fmt.Fprintf(errOut, "error: invalid priority: %s\n", c.priority)
		return exitcode.UserError
	}
	if c.status != "" && !validStatuses[c.status] {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
		return exitcode.UserError
	}

	patch := c.buildPatch()
	if patch == (service.TaskPatch{}) {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	_, err := svc.UpdateTask(ctx, id, patch)
	if err != nil {
		if api.StatusOf(err) == http.StatusNotFound || strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: task not found: %s\n", id)
			return exitcode.UserError
		}
		return backendFail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// buildPatch includes only the fields with non-empty flag values.
// "--due none" clears the due date.
func (c *EditCmd) buildPatch() service.TaskPatch {
	var p service.TaskPatch
	if c.title != "" {
		p.Title = &c.title
	}
	if c.description != "" {
		p.Description = &c.description
	}
	if c.dueDate != "" {
		if c.dueDate == "none" {
			// "--due none" clears the due date.
			empty := ""
			p.DueDate = &empty
		} else {
			p.DueDate = &c.dueDate
		}
	}
	if c.priority != "" {
		p.Priority = &c.priority
	}
	if c.status != "" {
		p.Status = &c.status
	}
	return p
}
