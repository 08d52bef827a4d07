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
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

func init() {
	Register(&HistoryCmd{})
}

// HistoryCmd lists assistant history, or deletes one entry with
// `history rm <id>`.
type HistoryCmd struct{}

func (c *HistoryCmd) Name() string                   { return "history" }
func (c *HistoryCmd) Aliases() []string              { return nil }
func (c *HistoryCmd) Synopsis() string               { return "Show assistant history" }
func (c *HistoryCmd) Usage() string                  { return "taskdeck history [rm <id>]" }
func (c *HistoryCmd) NeedsAuth() bool                { return true }
func (c *HistoryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HistoryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 && args[0] == "rm" {
		return c.remove(ctx, cfg, svc, args[1:], out, errOut)
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	items, err := svc.History(ctx)
	if err != nil {
		return backendFail(errOut, err)
	}
	if len(items) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no history")
		}
		return exitcode.Success
	}
	for _, h := range items {
		output.FormatHistoryItem(out, h)
	}
	return exitcode.Success
}

func (c *HistoryCmd) remove(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: history id required")
		return exitcode.UserError
	}
	id := strings.TrimSpace(args[0])

	if err := svc.DeleteHistory(ctx, id); err != nil {
		if api.StatusOf(err) == http.StatusNotFound || strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: history entry not found: %s\n", id)
			return exitcode.UserError
		}
		return backendFail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
