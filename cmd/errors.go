package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Exit statuses. Usage failures keep the values build scripts of the
// python generator already check for.
const (
	exitFailure   = 1
	exitBadFormat = 254
	exitUsage     = 255
)

// usageError is an invocation mistake; the usage text is printed with it.
type usageError struct {
	err  error
	code int
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return ue.code
	}
	return exitFailure
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &usageError{
				err:  fmt.Errorf("accepts %d arg(s), received %d", n, len(args)),
				code: exitUsage,
			}
		}
		return nil
	}
}
