// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"minitask/internal/service"
	"minitask/internal/tasklist"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task number).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError maps a controller or backend error to an exit code.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, tasklist.ErrIndexOutOfRange), errors.Is(err, service.ErrNotFound):
		return UserError
	case errors.Is(err, service.ErrUnauthorized):
		return AuthError
	default:
		return BackendError
	}
}
