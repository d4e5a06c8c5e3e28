package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/logging"
	"minitask/internal/service"
	"minitask/internal/tasklist"
)

// ErrTaskRefRequired indicates no task number was provided.
var ErrTaskRefRequired = errors.New("task number required")

// newController builds the controller every task command drives. Debug logs
// go to stderr.
func newController(cfg *config.Config, svc service.Client, stdio IO, confirm tasklist.Confirmer) *tasklist.Controller {
	opts := []tasklist.Option{
		tasklist.WithLogger(logging.New(stdio.Err, cfg.Debug)),
	}
	if confirm != nil {
		opts = append(opts, tasklist.WithConfirmer(confirm))
	}
	return tasklist.New(svc, opts...)
}

// ParseTaskNum parses a 1-based task number from the first argument.
func ParseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	return n, nil
}

// promptConfirmer asks on out and reads the answer from in.
// Only "y" or "yes" (any case) confirm.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error, taskNum int) int {
	switch {
	case errors.Is(err, tasklist.ErrIndexOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", taskNum)
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return exitcode.FromError(err)
}

func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
