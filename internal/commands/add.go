package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "minitask add <text...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(stdio.Err, "error: task text required")
		return exitcode.UserError
	}

	ctrl := newController(cfg, svc, stdio, nil)
	if err := ctrl.AddTask(ctx, text); err != nil {
		return reportError(stdio.Err, err, 0)
	}

	printOK(cfg, stdio.Out)
	return exitcode.Success
}
