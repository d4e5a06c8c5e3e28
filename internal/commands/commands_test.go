package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"minitask/internal/commands"
	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/service"
	"minitask/internal/testutil"
)

// runCommand is a helper to run a command against svc with stdin.
func runCommand(t *testing.T, cmd commands.Command, svc service.Client, args []string, quiet bool, stdin string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:     t.TempDir(),
		Backend: config.BackendLocal,
		Quiet:   quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, commands.IO{
		In:  strings.NewReader(stdin),
		Out: &outBuf,
		Err: &errBuf,
	})
	return outBuf.String(), errBuf.String(), code
}

func newFake(tasks ...service.Task) *testutil.FakeClient {
	fake := testutil.NewFakeClient()
	fake.SetTasks(tasks...)
	return fake
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "minitask 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "minitask add <text...>", "minitask clear-completed [--yes]", "--config <dir>"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	svc := newFake(
		service.Task{ID: "1", Text: "Buy milk"},
		service.Task{ID: "2", Text: "Buy eggs", Completed: true},
	)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Buy eggs\n\n1 item left\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, newFake(), nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected %q, got %q", "no tasks\n", stdout)
	}
}

func TestListCommand_Quiet(t *testing.T) {
	svc := newFake(service.Task{ID: "1", Text: "Buy milk"})

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, true, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("expected tasks without footer, got %q", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListCmd{}, newFake(), nil, true, "")
	if stdout != "" {
		t.Errorf("expected no output for empty quiet list, got %q", stdout)
	}
}

func TestListCommand_FetchError(t *testing.T) {
	svc := newFake()
	svc.FetchErr = errors.New("connection refused")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false, "")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: fetch tasks: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_Unauthorized(t *testing.T) {
	svc := newFake()
	svc.FetchErr = service.ErrUnauthorized

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false, "")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: auth error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := newFake()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}

	posts := svc.CallsTo("post")
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if body := posts[0].Body.(service.NewTask); body.TaskName != "Buy milk" {
		t.Errorf("expected taskName %q, got %q", "Buy milk", body.TaskName)
	}
	if len(svc.CallsTo("fetch")) != 1 {
		t.Errorf("expected a refetch after post")
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, newFake(), []string{"x"}, true, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
}

func TestAddCommand_NoText(t *testing.T) {
	svc := newFake()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"  "}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task text required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no calls, got %d", len(svc.Calls()))
	}
}

// Tests for toggle and rm commands
func TestToggleCommand(t *testing.T) {
	svc := newFake(
		service.Task{ID: "7", Text: "a"},
		service.Task{ID: "8", Text: "b", Completed: true},
	)

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"2"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	puts := svc.CallsTo("put")
	if len(puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(puts))
	}
	want := service.TaskUpdate{ID: "8", Completed: false}
	if puts[0].Body != want {
		t.Errorf("expected %+v, got %+v", want, puts[0].Body)
	}
}

func TestToggleCommand_OutOfRange(t *testing.T) {
	svc := newFake(service.Task{ID: "1", Text: "a"})

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"5"}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.CallsTo("put")) != 0 {
		t.Error("expected no put call")
	}
}

func TestToggleCommand_BadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing", nil, "error: task number required\n"},
		{"not a number", []string{"abc"}, "error: invalid task number: abc\n"},
		{"extra", []string{"1", "2"}, "error: unexpected argument: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFake()
			_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, tt.args, false, "")
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
			if len(svc.Calls()) != 0 {
				t.Errorf("expected no calls, got %d", len(svc.Calls()))
			}
		})
	}
}

func TestRmCommand(t *testing.T) {
	svc := newFake(service.Task{ID: "99", Text: "a"})

	stdout, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	if len(svc.Stored()) != 0 {
		t.Errorf("expected task deleted, have %d", len(svc.Stored()))
	}

	calls := svc.Calls()
	methods := make([]string, len(calls))
	for i, c := range calls {
		methods[i] = c.Method
	}
	if got := strings.Join(methods, ","); got != "fetch,delete,fetch" {
		t.Errorf("expected fetch,delete,fetch; got %s", got)
	}
}

// Tests for clear commands
func TestClearAllCommand(t *testing.T) {
	svc := newFake(service.Task{ID: "1", Text: "a"}, service.Task{ID: "2", Text: "b"})

	stdout, _, code := runCommand(t, &commands.ClearAllCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "removed 2\n" {
		t.Errorf("expected %q, got %q", "removed 2\n", stdout)
	}
	dels := svc.CallsTo("delete")
	if len(dels) != 1 || dels[0].Body != (service.TaskRef{ID: service.AllID}) {
		t.Errorf("expected one delete of all, got %+v", dels)
	}
}

func TestClearAllCommand_Empty(t *testing.T) {
	svc := newFake()

	stdout, _, code := runCommand(t, &commands.ClearAllCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "nothing to clear\n" {
		t.Errorf("expected %q, got %q", "nothing to clear\n", stdout)
	}
	if len(svc.CallsTo("delete")) != 0 {
		t.Error("expected no delete call")
	}
}

func TestClearCompletedCommand_Prompt(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		deletes int
		stdout  string
	}{
		{"yes", "y\n", 2, "removed 2\n"},
		{"full yes", "YES\n", 2, "removed 2\n"},
		{"no", "n\n", 0, "removed 0\n"},
		{"eof", "", 0, "removed 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFake(
				service.Task{ID: "1", Text: "a", Completed: true},
				service.Task{ID: "2", Text: "b"},
				service.Task{ID: "3", Text: "c", Completed: true},
			)

			stdout, stderr, code := runCommand(t, &commands.ClearCompletedCmd{}, svc, nil, false, tt.stdin)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if !strings.HasPrefix(stderr, "Delete completed tasks? [y/N] ") {
				t.Errorf("expected prompt on stderr, got %q", stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("expected %q, got %q", tt.stdout, stdout)
			}
			if got := len(svc.CallsTo("delete")); got != tt.deletes {
				t.Errorf("expected %d deletes, got %d", tt.deletes, got)
			}
		})
	}
}

func TestClearCompletedCommand_Yes(t *testing.T) {
	svc := newFake(
		service.Task{ID: "1", Text: "a", Completed: true},
		service.Task{ID: "2", Text: "b"},
	)

	cmd := &commands.ClearCompletedCmd{}
	cmd.SetYes(true)
	_, stderr, code := runCommand(t, cmd, svc, nil, true, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no prompt, got %q", stderr)
	}
	stored := svc.Stored()
	if len(stored) != 1 || stored[0].ID != "2" {
		t.Errorf("expected only task 2 left, got %+v", stored)
	}
}

func TestClearCompletedCommand_NoneCompleted(t *testing.T) {
	svc := newFake(service.Task{ID: "1", Text: "a"})

	stdout, stderr, code := runCommand(t, &commands.ClearCompletedCmd{}, svc, nil, false, "y\n")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no prompt, got %q", stderr)
	}
	if stdout != "nothing to clear\n" {
		t.Errorf("expected %q, got %q", "nothing to clear\n", stdout)
	}
}

func TestClearCompletedCommand_DeleteFails(t *testing.T) {
	svc := newFake(
		service.Task{ID: "1", Text: "a", Completed: true},
		service.Task{ID: "2", Text: "b", Completed: true},
	)
	svc.DeleteErrFor["1"] = errors.New("locked")

	cmd := &commands.ClearCompletedCmd{}
	cmd.SetYes(true)
	_, stderr, code := runCommand(t, cmd, svc, nil, false, "")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "delete task 1: locked") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.CallsTo("delete")) != 1 {
		t.Errorf("expected the first failed delete to stop the loop")
	}
}

// Tests for faq command
func TestFAQCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.FAQCmd{}, nil, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "FAQ\n---\n") {
		t.Errorf("expected FAQ header, got %q", stdout)
	}
}

func TestRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{
		"ls":     "list",
		"create": "add",
		"done":   "toggle",
		"delete": "rm",
	} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q: expected %q, got %q", alias, name, cmd.Name())
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.AddCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

// Tests for serve command
func TestServeCommand_RefusesRestBackend(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:     t.TempDir(),
		Backend: config.BackendREST,
		Listen:  "127.0.0.1:0",
	}

	code := (&commands.ServeCmd{}).Run(context.Background(), cfg, newFake(), nil, commands.IO{
		In:  strings.NewReader(""),
		Out: &outBuf,
		Err: &errBuf,
	})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if errBuf.String() != "error: serve needs a local or google backend\n" {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:     t.TempDir(),
		Backend: config.BackendLocal,
		Listen:  "127.0.0.1:0",
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := (&commands.ServeCmd{}).Run(ctx, cfg, newFake(), nil, commands.IO{
		In:  strings.NewReader(""),
		Out: &outBuf,
		Err: &errBuf,
	})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
}

// Tests for tui command
func TestTUICommand_QuitKey(t *testing.T) {
	svc := newFake(service.Task{ID: "1", Text: "Buy milk"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Backend: config.BackendLocal}
	code := (&commands.TUICmd{}).Run(ctx, cfg, svc, nil, commands.IO{
		In:  strings.NewReader("q"),
		Out: &outBuf,
		Err: &errBuf,
	})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
}
