// Package pipeline orchestrates a single gitgate run: inspect the tree,
// classify the change, compose the message, run the lint and build gates
// with healing, then stage and commit.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sprite-ai/gitgate/internal/classify"
	"github.com/sprite-ai/gitgate/internal/gate"
	"github.com/sprite-ai/gitgate/internal/message"
	"github.com/sprite-ai/gitgate/internal/model"
	"github.com/sprite-ai/gitgate/internal/scan"
)

// Git is the slice of the version-control client the pipeline consumes.
// Implemented by git.Client; tests inject fakes.
type Git interface {
	CurrentBranch() (string, error)
	HasPendingChanges() (bool, error)
	ChangedPaths() ([]string, error)
	DiffStat() (string, error)
	PathDiff(path string) (string, error)
	StageAll() error
	Commit(message string) error
	StagedStat() (string, error)
}

// Prompter asks the operator for a summary, pre-filled with the heuristic
// default. Returns what was accepted, or an error on abort.
type Prompter func(category, prefix, defaultSummary string) (string, error)

// Pipeline ties the run together. The RunConfig snapshot is owned here
// for the process lifetime and read-only everywhere below.
type Pipeline struct {
	cfg      *model.RunConfig
	git      Git
	executor *gate.Executor
	prompt   Prompter
	out      io.Writer
}

// New assembles a pipeline. prompt may be nil when running
// non-interactively; out receives operator diagnostics (nil discards).
func New(cfg *model.RunConfig, g Git, executor *gate.Executor, prompt Prompter, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: cfg, git: g, executor: executor, prompt: prompt, out: out}
}

// Run executes the whole pipeline. Any returned error is fatal and means
// no commit was created; side effects of external fix commands are not
// rolled back.
func (p *Pipeline) Run() error {
	branch, err := p.git.CurrentBranch()
	if err != nil {
		return &PreconditionError{Reason: "cannot determine current branch", Err: err}
	}

	if model.IsProtectedBranch(branch) && !p.cfg.AllowProtected {
		return &ProtectedBranchError{Branch: branch}
	}

	pending, err := p.git.HasPendingChanges()
	if err != nil {
		return &PreconditionError{Reason: "cannot read working tree status", Err: err}
	}
	if !pending {
		return ErrNothingToCommit
	}

	paths, err := p.git.ChangedPaths()
	if err != nil {
		return &PreconditionError{Reason: "cannot list changed paths", Err: err}
	}
	if len(paths) == 0 {
		return ErrNothingToCommit
	}

	p.warnSensitive(paths)

	category := classify.Classify(paths)
	fmt.Fprintf(p.out, "branch %s, %d changed file(s), category %s\n", branch, len(paths), category)

	if p.cfg.Detail {
		d := classify.Digest(paths, p.git)
		fmt.Fprintln(p.out, d.Render(false))
	}

	msg, err := p.resolveMessage(category, paths)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "commit message: %s\n", msg)

	if _, err := p.executor.RunGate(model.GateLint, p.cfg.LintCommand, p.cfg.LintMaxAttempts, p.cfg.HealEnabled); err != nil {
		return err
	}

	if !p.cfg.SkipBuild {
		if _, err := p.executor.RunGate(model.GateBuild, p.cfg.BuildCommand, p.cfg.BuildMaxAttempts, p.cfg.HealEnabled); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(p.out, "[build] skipped")
	}

	if p.cfg.DryRun {
		fmt.Fprintln(p.out, "dry run: gates passed, no commit created")
		return nil
	}

	if err := p.git.StageAll(); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}
	if err := p.git.Commit(msg); err != nil {
		return fmt.Errorf("creating commit: %w", err)
	}

	if stat, err := p.git.StagedStat(); err == nil && stat != "" {
		fmt.Fprintln(p.out, stat)
	}
	fmt.Fprintf(p.out, "committed: %s\n", msg)

	return nil
}

// warnSensitive surfaces risky paths for human review. Advisory only.
func (p *Pipeline) warnSensitive(paths []string) {
	findings := scan.Flag(paths)
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(p.out, "warning: %d path(s) look sensitive:\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(p.out, "  %s (%s)\n", f.Path, f.Category)
	}
}

// resolveMessage produces the final commit message. Precedence: explicit
// summary, then the interactive prompt (pre-filled with the heuristic),
// then the heuristic alone. The prefix is stamped at composition time.
func (p *Pipeline) resolveMessage(category model.ChangeCategory, paths []string) (string, error) {
	prefix := message.Prefix(time.Now())

	if s := strings.TrimSpace(p.cfg.Summary); s != "" {
		return compose(prefix, s)
	}

	heuristic := ""
	if !p.cfg.NoAutoSummary {
		heuristic = classify.Summary(category, paths)
	}

	if !p.cfg.NonInteractive && p.prompt != nil {
		s, err := p.prompt(category.String(), prefix, heuristic)
		if err != nil {
			return "", fmt.Errorf("reading summary: %w", err)
		}
		return compose(prefix, s)
	}

	if heuristic == "" {
		return "", &EmptySummaryError{}
	}
	return compose(prefix, heuristic)
}

func compose(prefix, summary string) (string, error) {
	msg, err := message.Compose(prefix, summary)
	if errors.Is(err, message.ErrEmptySummary) {
		return "", &EmptySummaryError{}
	}
	return msg, err
}
