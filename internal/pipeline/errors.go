package pipeline

import "fmt"

// PreconditionError means the run cannot start: git missing, not inside a
// repository, or nothing to commit. Always fatal before any gate runs.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// ErrNothingToCommit is the distinct "nothing to do" condition: a clean
// working tree is not a failure of the tool.
var ErrNothingToCommit = &PreconditionError{Reason: "nothing to commit"}

// ProtectedBranchError means the current branch is protected and no
// override was given.
type ProtectedBranchError struct {
	Branch string
}

func (e *ProtectedBranchError) Error() string {
	return fmt.Sprintf("refusing to commit on protected branch %q (use --force-branch to override)", e.Branch)
}

// EmptySummaryError means no summary could be resolved: none supplied,
// the heuristic disabled, and no interactive prompt available.
type EmptySummaryError struct{}

func (e *EmptySummaryError) Error() string {
	return "no commit summary available (supply --summary, or drop --no-auto-summary / --non-interactive)"
}
