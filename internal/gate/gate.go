// Package gate implements the bounded-retry executor that stands between
// a pending commit and the lint/build commands. Each gate runs an opaque
// external command; a non-zero exit triggers best-effort remediation and
// a retry until the attempt budget is spent.
package gate

import (
	"fmt"
	"io"
	"strings"

	"github.com/sprite-ai/gitgate/internal/model"
	"github.com/sprite-ai/gitgate/internal/shell"
)

// Result captures one execution attempt of a gate command.
type Result struct {
	Kind     model.GateKind
	ExitCode int
	Output   string // combined stdout and stderr
	Attempt  int
}

// ExhaustedError reports that a gate's retries are spent (or that healing
// was disabled and the single attempt failed). Output carries the full
// captured output of the final attempt.
type ExhaustedError struct {
	Kind     model.GateKind
	Attempts int
	Output   string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s gate failed after %d attempt(s)", e.Kind, e.Attempts)
}

// Healer dispatches remediation between a failed attempt and the next
// retry. Implementations are best-effort and must not fail the pipeline.
type Healer interface {
	Attempt(kind model.GateKind, failureOutput string)
}

// Executor runs gate commands. The runner indirection exists so tests can
// substitute a fake for real subprocess execution.
type Executor struct {
	runner func(command string) shell.Result
	healer Healer
	out    io.Writer
}

// New returns an executor that runs commands through the shell and
// reports progress to out. healer may be nil when healing is disabled.
func New(healer Healer, out io.Writer) *Executor {
	if out == nil {
		out = io.Discard
	}
	return &Executor{runner: shell.Run, healer: healer, out: out}
}

// NewWithRunner is New with a custom command runner, for tests.
func NewWithRunner(runner func(string) shell.Result, healer Healer, out io.Writer) *Executor {
	e := New(healer, out)
	e.runner = runner
	return e
}

// RunGate executes the gate command up to maxAttempts times. It returns
// the successful attempt's result, or an ExhaustedError once the budget
// is spent. With healing disabled a single failure exhausts the gate
// immediately. Attempts are strictly sequential.
func (e *Executor) RunGate(kind model.GateKind, command string, maxAttempts int, healEnabled bool) (Result, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		fmt.Fprintf(e.out, "[%s] attempt %d/%d: %s\n", kind, attempt, maxAttempts, command)

		r := e.runner(command)
		res := Result{Kind: kind, ExitCode: r.ExitCode, Output: r.Output, Attempt: attempt}

		if r.ExitCode == 0 {
			fmt.Fprintf(e.out, "[%s] passed on attempt %d\n", kind, attempt)
			return res, nil
		}

		if !healEnabled || attempt == maxAttempts {
			return res, &ExhaustedError{Kind: kind, Attempts: attempt, Output: r.Output}
		}

		hint := ExtractHint(r.Output, maxHintLines)
		fmt.Fprintf(e.out, "[%s] attempt %d failed (exit %d):\n", kind, attempt, r.ExitCode)
		for _, line := range hint {
			fmt.Fprintf(e.out, "  %s\n", line)
		}

		if e.healer != nil {
			e.healer.Attempt(kind, r.Output)
		}
	}
}

// maxHintLines bounds the failure extract shown between attempts.
const maxHintLines = 10

var errorMarkers = []string{"error", "Error", "ERROR", "ERR!", "FAIL", "fail", "✖"}

// ExtractHint pulls the most relevant lines out of a failed command's
// output: lines carrying an error marker first, otherwise the final lines
// as a fallback. The result never exceeds max lines.
func ExtractHint(output string, max int) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var marked []string
	for _, line := range lines {
		for _, m := range errorMarkers {
			if strings.Contains(line, m) {
				marked = append(marked, line)
				break
			}
		}
		if len(marked) == max {
			return marked
		}
	}
	if len(marked) > 0 {
		return marked
	}

	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}
