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
	Register(&ClearAllCmd{})
	Register(&ClearCompletedCmd{})
}

// ClearAllCmd presses the "Clear all" button.
type ClearAllCmd struct{}

func (c *ClearAllCmd) Name() string       { return "clear-all" }
func (c *ClearAllCmd) Aliases() []string  { return nil }
func (c *ClearAllCmd) Synopsis() string   { return "Delete every task" }
func (c *ClearAllCmd) Usage() string      { return "minitask clear-all" }
func (c *ClearAllCmd) NeedsBackend() bool { return true }

func (c *ClearAllCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearAllCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	ctrl := newController(cfg, svc, stdio, nil)
	return pressButton(ctx, cfg, ctrl, tasklist.ActionClearAll, tasklist.KeyAllTask, stdio)
}

// ClearCompletedCmd presses the "Clear completed" button.
type ClearCompletedCmd struct {
	yes bool
}

// SetYes skips the confirmation prompt (for testing).
func (c *ClearCompletedCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *ClearCompletedCmd) Name() string       { return "clear-completed" }
func (c *ClearCompletedCmd) Aliases() []string  { return nil }
func (c *ClearCompletedCmd) Synopsis() string   { return "Delete completed tasks" }
func (c *ClearCompletedCmd) Usage() string      { return "minitask clear-completed [--yes]" }
func (c *ClearCompletedCmd) NeedsBackend() bool { return true }

func (c *ClearCompletedCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *ClearCompletedCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	var confirm tasklist.Confirmer = newPromptConfirmer(stdio.In, stdio.Err)
	if c.yes {
		confirm = tasklist.ConfirmFunc(func(string) bool { return true })
	}
	ctrl := newController(cfg, svc, stdio, confirm)
	return pressButton(ctx, cfg, ctrl, tasklist.ActionClearCompleted, tasklist.KeyCompletedTask, stdio)
}

// pressButton loads the list and dispatches action unless the button keyed
// by disabledKey is disabled.
func pressButton(ctx context.Context, cfg *config.Config, ctrl *tasklist.Controller, action, disabledKey string, stdio IO) int {
	if err := ctrl.Refetch(ctx); err != nil {
		return reportError(stdio.Err, err, 0)
	}

	if ctrl.IsButtonDisabled(disabledKey) {
		if !cfg.Quiet {
			fmt.Fprintln(stdio.Out, "nothing to clear")
		}
		return exitcode.Success
	}

	before := len(ctrl.Tasks())
	if err := ctrl.DispatchButtonAction(ctx, tasklist.Press(action)); err != nil {
		return reportError(stdio.Err, err, 0)
	}

	if !cfg.Quiet {
		fmt.Fprintf(stdio.Out, "removed %d\n", before-len(ctrl.Tasks()))
	}
	return exitcode.Success
}
