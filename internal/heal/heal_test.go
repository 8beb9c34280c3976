package heal

import (
	"io"
	"testing"

	"github.com/sprite-ai/gitgate/internal/model"
	"github.com/sprite-ai/gitgate/internal/shell"
)

type recorded struct {
	command string
	stdin   string
}

func newTestHealer(cfg *model.RunConfig, hook string) (*Healer, *[]recorded) {
	var calls []recorded
	h := New(cfg, hook, io.Discard)
	h.run = func(command string) shell.Result {
		calls = append(calls, recorded{command: command})
		return shell.Result{ExitCode: 0}
	}
	h.runStdin = func(command, stdin string) shell.Result {
		calls = append(calls, recorded{command: command, stdin: stdin})
		return shell.Result{ExitCode: 1}
	}
	return h, &calls
}

func TestAttemptAutoFixLintOnly(t *testing.T) {
	cfg := &model.RunConfig{FixCommand: "npm run lint:fix", AutoFix: true}
	h, calls := newTestHealer(cfg, "")

	h.Attempt(model.GateBuild, "boom")
	if len(*calls) != 0 {
		t.Fatalf("fix variant must not run for the build gate: %v", *calls)
	}

	h.Attempt(model.GateLint, "boom")
	if len(*calls) != 1 || (*calls)[0].command != "npm run lint:fix" {
		t.Fatalf("expected one fix invocation, got %v", *calls)
	}
}

func TestAttemptAutoFixAppliesOnce(t *testing.T) {
	cfg := &model.RunConfig{FixCommand: "npm run lint:fix", AutoFix: true}
	h, calls := newTestHealer(cfg, "")

	h.Attempt(model.GateLint, "first failure")
	h.Attempt(model.GateLint, "second failure")

	if len(*calls) != 1 {
		t.Fatalf("fix variant must apply once per run, got %d calls", len(*calls))
	}
}

func TestAttemptNoAutoFix(t *testing.T) {
	cfg := &model.RunConfig{FixCommand: "npm run lint:fix"}
	h, calls := newTestHealer(cfg, "")

	h.Attempt(model.GateLint, "boom")
	if len(*calls) != 0 {
		t.Fatalf("without the legacy flag nothing should run, got %v", *calls)
	}
}

func TestAttemptHookReceivesFailureOnStdin(t *testing.T) {
	cfg := &model.RunConfig{}
	h, calls := newTestHealer(cfg, "./heal-hook.sh")

	h.Attempt(model.GateBuild, "error TS2322: type mismatch")

	if len(*calls) != 1 {
		t.Fatalf("expected one hook invocation, got %d", len(*calls))
	}
	got := (*calls)[0]
	if got.command != "./heal-hook.sh" {
		t.Errorf("unexpected hook command %q", got.command)
	}
	if got.stdin != "error TS2322: type mismatch" {
		t.Errorf("hook must receive the failure output on stdin, got %q", got.stdin)
	}
}

func TestAttemptHookFailureSwallowed(t *testing.T) {
	// runStdin above reports exit 1; Attempt must not panic or surface it.
	cfg := &model.RunConfig{FixCommand: "npm run lint:fix", AutoFix: true}
	h, calls := newTestHealer(cfg, "./heal-hook.sh")

	h.Attempt(model.GateLint, "boom")

	// fix variant first, hook second — sequential order is load-bearing.
	if len(*calls) != 2 {
		t.Fatalf("expected fix then hook, got %v", *calls)
	}
	if (*calls)[0].command != "npm run lint:fix" || (*calls)[1].command != "./heal-hook.sh" {
		t.Errorf("wrong order: %v", *calls)
	}
}
