// Package cli parses the command line and dispatches to a registered command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"minitask/internal/commands"
	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
)

// ServiceFactory opens the task backend for cfg.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Client, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, stdio commands.IO) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, stdio)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(stdio.Err, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], stdio)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, stdio commands.IO) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(stdio.Err, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, stdio)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, stdio commands.IO) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stdio.Err, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leftover leading dash means a flag after a positional argument.
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(stdio.Err, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(stdio.Err, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	var svc service.Client
	if cmd.NeedsBackend() {
		if d.factory == nil {
			fmt.Fprintln(stdio.Err, "error: no backend configured")
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				fmt.Fprintf(stdio.Err, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(stdio.Err, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		if closer, ok := svc.(io.Closer); ok {
			defer closer.Close()
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, stdio)
}

// flagErrorMessage rewrites the flag package's errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()
	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		return errStr
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	default:
		return errStr
	}
}
