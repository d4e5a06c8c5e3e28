package commands

import (
	"context"
	"flag"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/output"
	"minitask/internal/service"
	"minitask/internal/tasklist"
)

func init() {
	Register(&FAQCmd{})
}

// FAQCmd presses the FAQ button and prints the modal.
type FAQCmd struct{}

func (c *FAQCmd) Name() string       { return "faq" }
func (c *FAQCmd) Aliases() []string  { return nil }
func (c *FAQCmd) Synopsis() string   { return "Show frequently asked questions" }
func (c *FAQCmd) Usage() string      { return "minitask faq" }
func (c *FAQCmd) NeedsBackend() bool { return false }

func (c *FAQCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FAQCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	ctrl := newController(cfg, svc, stdio, nil)
	if err := ctrl.DispatchButtonAction(ctx, tasklist.Press(tasklist.ActionFAQ)); err != nil {
		return reportError(stdio.Err, err, 0)
	}
	if ctrl.ShowModal() {
		output.FormatFAQ(stdio.Out)
		ctrl.HideModal()
	}
	return exitcode.Success
}
