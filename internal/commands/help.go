package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                                List all tasks
  taskdeck list [--status <s>] [--due-after <date>] [--due-before <date>]
  taskdeck add [--desc <text>] [--due <date>] [--priority <p>] <title...>
  taskdeck edit [--title <t>] [--desc <text>] [--due <date>] [--priority <p>] [--status <s>] <id>
  taskdeck done <id>
  taskdeck start <id>
  taskdeck rm <id>
  taskdeck ask [--local] <message...>
  taskdeck history [rm <id>]
  taskdeck profile [--name <n>] [--avatar <url>]
  taskdeck settings [--theme <t>] [--style <s>] [--lang <l>]
  taskdeck register [--name <name>] [--password <pw>] <email>
  taskdeck login [--password <pw>] <email>
  taskdeck logout
  taskdeck whoami
  taskdeck help
  taskdeck version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
