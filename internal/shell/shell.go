// Package shell invokes opaque command lines and captures their outcome.
// It is the only place where platform shell quoting exists; everything
// above it deals in a command string and a Result.
package shell

import (
	"os/exec"
	"strings"
)

// Result is the outcome of a single command invocation.
type Result struct {
	ExitCode int
	Output   string // combined stdout and stderr
}

// Ok reports whether the command exited cleanly.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Run executes command through the shell, blocking until it terminates,
// and returns its exit status with combined output. A command that cannot
// be started at all is reported as exit -1 with the error text as output.
func Run(command string) Result {
	return run(command, "")
}

// RunStdin is Run with the given text delivered on the command's stdin.
func RunStdin(command, stdin string) Result {
	return run(command, stdin)
}

func run(command, stdin string) Result {
	cmd := exec.Command("sh", "-c", command)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	out, err := cmd.CombinedOutput()
	res := Result{Output: string(out)}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// Could not start at all (e.g. no shell). Surface the error
			// text where the raw output would have been.
			res.ExitCode = -1
			res.Output = err.Error()
		}
	}

	return res
}
