// Package ui is the interactive terminal front end over a tasklist.Controller.
package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"minitask/internal/service"
)

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, client service.Client, logger zerolog.Logger, in io.Reader, out io.Writer) error {
	model := New(ctx, client, logger)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}
