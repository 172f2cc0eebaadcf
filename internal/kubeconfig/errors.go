package kubeconfig

import (
	"errors"
	"fmt"

	"github.com/renato0307/fluxtree/internal/cli"
)

// CLIError means kubectl could not be run or exited unsuccessfully
type CLIError struct {
	Op       string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CLIError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func newCLIError(op string, err error) *CLIError {
	e := &CLIError{Op: op, Err: err, ExitCode: -1}
	var cliErr *cli.Error
	if errors.As(err, &cliErr) {
		e.ExitCode = cliErr.ExitCode
		e.Stderr = cliErr.Stderr
	}
	return e
}

// ParseError means the kubeconfig text is not a kubeconfig document
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse kubeconfig: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
