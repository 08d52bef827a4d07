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
	Register(&DoneCmd{})
	Register(&StartCmd{})
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                       { return "done" }
func (c *DoneCmd) Aliases() []string                  { return nil }
func (c *DoneCmd) Synopsis() string                   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string                      { return "taskdeck done <id>" }
func (c *DoneCmd) NeedsAuth() bool                    { return true }
func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet)     {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, svc, args, "completed", out, errOut)
}

// StartCmd marks a task in progress.
type StartCmd struct{}

func (c *StartCmd) Name() string                       { return "start" }
func (c *StartCmd) Aliases() []string                  { return nil }
func (c *StartCmd) Synopsis() string                   { return "Mark a task in progress" }
func (c *StartCmd) Usage() string                      { return "taskdeck start <id>" }
func (c *StartCmd) NeedsAuth() bool                    { return true }
func (c *StartCmd) RegisterFlags(fs *flag.FlagSet)     {}

func (c *StartCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, svc, args, "in-progress", out, errOut)
}

// setStatus is the shared implementation for done and start.
func setStatus(ctx context.Context, cfg *config.Config, svc service.Service, args []string, status string, out, errOut io.Writer) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := strings.TrimSpace(args[0])

	_, err := svc.UpdateTask(ctx, id, service.TaskPatch{Status: &status})
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
