// Package heal implements the remediation strategies dispatched between
// failed gate attempts. Everything here is best-effort: a strategy that
// cannot run is logged and skipped, never fatal. The next gate attempt
// always re-runs the original command to verify.
package heal

import (
	"fmt"
	"io"
	"os"

	"github.com/sprite-ai/gitgate/internal/model"
	"github.com/sprite-ai/gitgate/internal/shell"
)

// HookEnv is the environment variable naming the external remediation
// command. The hook is identified indirectly so no command line is ever
// embedded in this tool; an unset variable is the normal configuration.
const HookEnv = "GITGATE_HEAL_CMD"

// HookFromEnv resolves the external hook command, or "" when none is
// configured.
func HookFromEnv() string {
	return os.Getenv(HookEnv)
}

// Healer applies the configured remediation strategies for a failed gate.
type Healer struct {
	fixCommand string
	autoFix    bool
	hook       string

	run      func(command string) shell.Result
	runStdin func(command, stdin string) shell.Result
	out      io.Writer

	fixApplied bool
}

// New builds a healer from the run configuration and the hook resolved at
// startup. out receives strategy logs; nil discards them.
func New(cfg *model.RunConfig, hook string, out io.Writer) *Healer {
	if out == nil {
		out = io.Discard
	}
	return &Healer{
		fixCommand: cfg.FixCommand,
		autoFix:    cfg.AutoFix,
		hook:       hook,
		run:        shell.Run,
		runStdin:   shell.RunStdin,
		out:        out,
	}
}

// Attempt dispatches remediation for a failed gate. It never returns an
// error; strategy failures are logged and swallowed.
//
// The fix variant applies before the hook. If the hook patches the same
// files the fix touched, the later write wins; the next gate attempt
// re-validates either way.
func (h *Healer) Attempt(kind model.GateKind, failureOutput string) {
	if kind == model.GateLint && h.autoFix && !h.fixApplied {
		h.fixApplied = true
		h.applyFix()
	}

	if h.hook != "" {
		h.invokeHook(failureOutput)
	}
}

// applyFix runs the fix variant of the lint command once per run and
// records whether it exited cleanly.
func (h *Healer) applyFix() {
	if h.fixCommand == "" {
		return
	}
	fmt.Fprintf(h.out, "[heal] applying fix variant: %s\n", h.fixCommand)
	if r := h.run(h.fixCommand); r.Ok() {
		fmt.Fprintf(h.out, "[heal] fix variant exited cleanly\n")
	} else {
		fmt.Fprintf(h.out, "[heal] fix variant exited %d (continuing)\n", r.ExitCode)
	}
}

// invokeHook feeds the failure output to the external hook on stdin.
// Fire-and-forget: its exit status and output are not inspected beyond
// logging, and an invocation failure never propagates.
func (h *Healer) invokeHook(failureOutput string) {
	fmt.Fprintf(h.out, "[heal] invoking external hook\n")
	if r := h.runStdin(h.hook, failureOutput); !r.Ok() {
		fmt.Fprintf(h.out, "[heal] hook exited %d (ignored)\n", r.ExitCode)
	}
}
