package gate

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sprite-ai/gitgate/internal/model"
	"github.com/sprite-ai/gitgate/internal/shell"
)

// scriptedRunner returns canned exit codes, one per invocation, and
// counts calls.
type scriptedRunner struct {
	exits []int
	calls int
}

func (s *scriptedRunner) run(command string) shell.Result {
	exit := 1
	if s.calls < len(s.exits) {
		exit = s.exits[s.calls]
	}
	s.calls++
	return shell.Result{ExitCode: exit, Output: "error: something broke"}
}

type countingHealer struct {
	calls int
	kinds []model.GateKind
}

func (h *countingHealer) Attempt(kind model.GateKind, failureOutput string) {
	h.calls++
	h.kinds = append(h.kinds, kind)
}

func TestRunGateSuccessFirstAttempt(t *testing.T) {
	runner := &scriptedRunner{exits: []int{0}}
	ex := NewWithRunner(runner.run, nil, io.Discard)

	res, err := ex.RunGate(model.GateLint, "npm run lint", 3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Attempt != 1 {
		t.Errorf("expected attempt 1, got %d", res.Attempt)
	}
	if runner.calls != 1 {
		t.Errorf("expected 1 invocation, got %d", runner.calls)
	}
}

func TestRunGateHealDisabledSingleAttempt(t *testing.T) {
	runner := &scriptedRunner{exits: []int{1}}
	healer := &countingHealer{}
	ex := NewWithRunner(runner.run, healer, io.Discard)

	_, err := ex.RunGate(model.GateLint, "npm run lint", 5, false)

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if runner.calls != 1 {
		t.Errorf("healing disabled: expected exactly 1 attempt, got %d", runner.calls)
	}
	if healer.calls != 0 {
		t.Errorf("healing disabled: healer must not run, got %d calls", healer.calls)
	}
	if exhausted.Attempts != 1 {
		t.Errorf("expected Attempts == 1, got %d", exhausted.Attempts)
	}
}

func TestRunGateHealsThenSucceeds(t *testing.T) {
	// Fails twice, succeeds on the third call.
	runner := &scriptedRunner{exits: []int{1, 1, 0}}
	healer := &countingHealer{}
	ex := NewWithRunner(runner.run, healer, io.Discard)

	res, err := ex.RunGate(model.GateBuild, "npm run build", 3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Attempt != 3 {
		t.Errorf("expected success on attempt 3, got %d", res.Attempt)
	}
	if healer.calls != 2 {
		t.Errorf("expected healing exactly twice, got %d", healer.calls)
	}
	for _, k := range healer.kinds {
		if k != model.GateBuild {
			t.Errorf("healer received wrong kind: %s", k)
		}
	}
}

func TestRunGateExhaustsAfterMaxAttempts(t *testing.T) {
	runner := &scriptedRunner{} // always fails
	healer := &countingHealer{}
	ex := NewWithRunner(runner.run, healer, io.Discard)

	_, err := ex.RunGate(model.GateLint, "npm run lint", 4, true)

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if runner.calls != 4 {
		t.Errorf("expected exactly 4 attempts, got %d", runner.calls)
	}
	if exhausted.Attempts != 4 {
		t.Errorf("expected Attempts == 4, got %d", exhausted.Attempts)
	}
	if exhausted.Output == "" {
		t.Error("exhausted error must carry the final attempt's output")
	}
	// Healing runs between attempts, never after the last one.
	if healer.calls != 3 {
		t.Errorf("expected 3 heal dispatches, got %d", healer.calls)
	}
}

func TestRunGateMinimumOneAttempt(t *testing.T) {
	runner := &scriptedRunner{exits: []int{0}}
	ex := NewWithRunner(runner.run, nil, io.Discard)

	res, err := ex.RunGate(model.GateLint, "true", 0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Attempt != 1 {
		t.Errorf("expected attempt 1, got %d", res.Attempt)
	}
}

func TestExtractHintPrefersErrorMarkers(t *testing.T) {
	output := strings.Join([]string{
		"compiling module a",
		"src/app.ts(10,3): error TS2322: type mismatch",
		"compiling module b",
		"npm ERR! exit status 2",
		"done",
	}, "\n")

	hint := ExtractHint(output, 10)
	if len(hint) != 2 {
		t.Fatalf("expected 2 marker lines, got %d: %v", len(hint), hint)
	}
	if !strings.Contains(hint[0], "TS2322") {
		t.Errorf("unexpected first hint line: %q", hint[0])
	}
}

func TestExtractHintFallsBackToTail(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "progress line")
	}
	lines = append(lines, "final line")

	hint := ExtractHint(strings.Join(lines, "\n"), 5)
	if len(hint) != 5 {
		t.Fatalf("expected 5 tail lines, got %d", len(hint))
	}
	if hint[4] != "final line" {
		t.Errorf("expected tail to end with the last line, got %q", hint[4])
	}
}

func TestExtractHintBounded(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "error: repeated failure")
	}

	hint := ExtractHint(strings.Join(lines, "\n"), 10)
	if len(hint) != 10 {
		t.Errorf("expected hint capped at 10 lines, got %d", len(hint))
	}
}

func TestExtractHintEmptyOutput(t *testing.T) {
	if hint := ExtractHint("", 10); hint != nil {
		t.Errorf("expected nil hint for empty output, got %v", hint)
	}
}
