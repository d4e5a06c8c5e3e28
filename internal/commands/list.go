package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/output"
	"minitask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Also runs for `minitask` with no args.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "minitask list" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	if len(args) > 0 {
		fmt.Fprintf(stdio.Err, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl := newController(cfg, svc, stdio, nil)
	if err := ctrl.Refetch(ctx); err != nil {
		return reportError(stdio.Err, err, 0)
	}

	tasks := ctrl.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			output.FormatTasks(stdio.Out, tasks)
		}
		return exitcode.Success
	}

	output.FormatTasks(stdio.Out, tasks)
	if !cfg.Quiet {
		printFooter(stdio.Out, ctrl.IncompleteCount())
	}
	return exitcode.Success
}

func printFooter(w io.Writer, incomplete int) {
	fmt.Fprintln(w)
	output.FormatRemaining(w, incomplete)
}
