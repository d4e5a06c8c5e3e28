// Package main is the entry point for the minitask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"minitask/internal/backend"
	"minitask/internal/cli"
	"minitask/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend.Open)

	code := dispatcher.Run(ctx, os.Args[1:], commands.IO{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	})
	cancel()
	os.Exit(code)
}
