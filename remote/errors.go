package remote

import (
	"fmt"

	"emperror.dev/errors"
)

// ConnectionError indicates the SSH channel to a host could not be
// established at all. It is fatal for the whole run.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("remote: connecting to %s: %s", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CommandError indicates a remote command could not be executed, or timed
// out, on an otherwise established channel. It aborts the listing of that
// host; per-module parse degradation is not an error and never reaches this
// package.
type CommandError struct {
	Target  string
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("remote: running command on %s: %s", e.Target, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsConnectionError checks if the given error is a connection failure, even
// if wrapped further up the stack.
func IsConnectionError(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsCommandError checks if the given error is a remote command failure, even
// if wrapped further up the stack.
func IsCommandError(err error) bool {
	var target *CommandError
	return errors.As(err, &target)
}
