// Package main provides the conchdesk CLI: the HTTP service plus commands
// for working with engagements and deliverable runs from a terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "conchdesk:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// userError marks a failure caused by how the command was invoked.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

func asUserError(err error) error {
	if err == nil {
		return nil
	}
	return userError{err: err}
}

// exitCode maps err onto exitUserError for invocation, validation and
// not-found failures, and exitSysError for everything else.
func exitCode(err error) int {
	var ue userError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue),
		types.IsValidation(err),
		errors.Is(err, types.ErrNotFound):
		return exitUserError
	default:
		return exitSysError
	}
}
