package commands

import (
	"context"
	"flag"
	"fmt"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/logging"
	"minitask/internal/service"
	"minitask/internal/ui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd opens the interactive terminal UI.
type TUICmd struct{}

func (c *TUICmd) Name() string       { return "tui" }
func (c *TUICmd) Aliases() []string  { return nil }
func (c *TUICmd) Synopsis() string   { return "Open the interactive task list" }
func (c *TUICmd) Usage() string      { return "minitask tui" }
func (c *TUICmd) NeedsBackend() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	// The alt screen owns stdout; only errors reach the log.
	logger := logging.New(stdio.Err, false)
	if err := ui.Run(ctx, svc, logger, stdio.In, stdio.Out); err != nil {
		fmt.Fprintf(stdio.Err, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
