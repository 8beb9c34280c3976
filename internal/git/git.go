// Package git wraps the external git client used to inspect and mutate
// the working tree. All calls are synchronous; output is treated as
// opaque text and parsed defensively.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git commands in a fixed repository directory.
type Client struct {
	Dir string
}

// Open locates the repository root for the current directory and returns
// a client bound to it.
func Open() (*Client, error) {
	root, err := RepoRoot()
	if err != nil {
		return nil, fmt.Errorf("not in a git repository (or git not installed): %w", err)
	}
	return &Client{Dir: root}, nil
}

// RepoRoot returns the top-level directory of the enclosing repository.
func RepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (c *Client) CurrentBranch() (string, error) {
	out, err := c.git("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasPendingChanges reports whether the working tree has any modification,
// staged or not, including untracked files.
func (c *Client) HasPendingChanges() (bool, error) {
	out, err := c.git("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// ChangedPaths returns every path with a pending modification, in the
// order git reports them. The order is not semantically significant but
// is preserved so digests are deterministic.
func (c *Client) ChangedPaths() ([]string, error) {
	out, err := c.git("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseStatus(out), nil
}

// parseStatus extracts paths from porcelain status output. Each line is
// a two-character status code, a space, then the path. Lines too short
// to carry a path are skipped rather than treated as fatal.
func parseStatus(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if path == "" {
			continue
		}
		// Renames are reported as "old -> new"; the new side is the one
		// that exists in the tree being committed.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		paths = append(paths, strings.Trim(path, `"`))
	}
	return paths
}

// DiffStat returns the structural diff statistics for the working tree
// against HEAD, verbatim.
func (c *Client) DiffStat() (string, error) {
	out, err := c.git("diff", "--stat", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// PathDiff returns the unified diff for a single path against HEAD.
// An untracked path produces an empty diff, not an error.
func (c *Client) PathDiff(path string) (string, error) {
	out, err := c.git("diff", "HEAD", "--", path)
	if err != nil {
		// Paths unknown to HEAD (fresh repository, untracked file) are
		// a normal condition for the digest, not a failure.
		return "", nil
	}
	return out, nil
}

// StageAll stages every pending change, including untracked files.
func (c *Client) StageAll() error {
	_, err := c.git("add", "-A")
	return err
}

// Commit creates a commit with the literal message.
func (c *Client) Commit(message string) error {
	_, err := c.git("commit", "-m", message)
	return err
}

// StagedStat returns the diff statistics of the index, verbatim. Used to
// echo what was actually committed.
func (c *Client) StagedStat() (string, error) {
	out, err := c.git("diff", "--cached", "--stat")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
