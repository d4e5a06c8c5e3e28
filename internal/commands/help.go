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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "minitask help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	fmt.Fprint(stdio.Out, helpText(DefaultRegistry))
	return exitcode.Success
}

func helpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	fmt.Fprintf(&b, "  %-40s %s\n", "minitask", "List tasks")
	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  %-40s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	b.WriteString(`
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`)
	return b.String()
}
