package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/gin-gonic/gin"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/logging"
	"minitask/internal/server"
	"minitask/internal/service"
)

// DefaultPrefix matches the path of config.DefaultBaseURL.
const DefaultPrefix = "/api/v1"

func init() {
	Register(&ServeCmd{})
}

// ServeCmd exposes the configured backend over HTTP for rest clients.
type ServeCmd struct {
	listen string
	prefix string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the task list over HTTP" }
func (c *ServeCmd) Usage() string      { return "minitask serve [--listen addr] [--prefix path]" }
func (c *ServeCmd) NeedsBackend() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
	fs.StringVar(&c.prefix, "prefix", DefaultPrefix, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Client, args []string, stdio IO) int {
	if cfg.Backend == config.BackendREST {
		fmt.Fprintln(stdio.Err, "error: serve needs a local or google backend")
		return exitcode.UserError
	}

	addr := c.listen
	if addr == "" {
		addr = cfg.Listen
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.NewServer(stdio.Err, cfg.Debug)
	srv := server.New(svc, logger, server.Options{
		Prefix: c.prefix,
		Token:  cfg.Token,
	})
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(stdio.Err, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
