package commands

import (
	"context"
	"flag"
	"fmt"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
	"minitask/internal/tasklist"
)

func init() {
	Register(&ToggleCmd{})
	Register(&RmCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Mark a task completed, or open again" }
func (c *ToggleCmd) Usage() string      { return "minitask toggle <n>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	return runAtIndex(ctx, cfg, svc, args, stdio, (*tasklist.Controller).ToggleTaskAt)
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "minitask rm <n>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	return runAtIndex(ctx, cfg, svc, args, stdio, (*tasklist.Controller).DeleteTaskAt)
}

// runAtIndex is the shared implementation for toggle and rm: load the list,
// then apply op to the task numbered by args[0].
func runAtIndex(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO,
	op func(*tasklist.Controller, context.Context, int) error) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(stdio.Err, "error: %v\n", err)
		return exitcode.UserError
	}

	ctrl := newController(cfg, svc, stdio, nil)
	if err := ctrl.Refetch(ctx); err != nil {
		return reportError(stdio.Err, err, num)
	}
	if err := op(ctrl, ctx, num-1); err != nil {
		return reportError(stdio.Err, err, num)
	}

	printOK(cfg, stdio.Out)
	return exitcode.Success
}
