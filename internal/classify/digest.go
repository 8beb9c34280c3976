package classify

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/gitgate/internal/diff"
)

// Digest bounds. At most maxPreviewFiles paths get a snippet, with at
// most maxSnippetLines changed lines each.
const (
	maxPreviewFiles = 10
	maxSnippetLines = 12
)

// Source provides the raw material a digest is built from. Satisfied by
// the git client; tests inject fakes.
type Source interface {
	DiffStat() (string, error)
	PathDiff(path string) (string, error)
}

// Snippet is the bounded preview for one changed path.
type Snippet struct {
	Path  string
	Lines []string // +/- prefixed changed lines, no headers or hunk markers
	Note  string   // set when there are no extractable lines
}

// ChangeDigest is the composed textual digest of a change set.
type ChangeDigest struct {
	FileCount int
	Stat      string // structural diff-stat block, verbatim
	Snippets  []Snippet
	Omitted   int // paths beyond the preview bound
}

// Digest builds the change digest for the given paths, previewing at most
// the first maxPreviewFiles of them. A nil or empty path set yields a
// digest with no snippets; per-file extraction is never attempted.
func Digest(paths []string, src Source) *ChangeDigest {
	d := &ChangeDigest{FileCount: len(paths)}

	if stat, err := src.DiffStat(); err == nil {
		d.Stat = stat
	}

	if len(paths) == 0 {
		return d
	}

	preview := paths
	if len(preview) > maxPreviewFiles {
		preview = preview[:maxPreviewFiles]
		d.Omitted = len(paths) - maxPreviewFiles
	}

	for _, path := range preview {
		d.Snippets = append(d.Snippets, snippetFor(path, src))
	}

	return d
}

func snippetFor(path string, src Source) Snippet {
	s := Snippet{Path: path}

	raw, err := src.PathDiff(path)
	if err != nil || strings.TrimSpace(raw) == "" {
		s.Note = "no extractable diff (binary or untracked)"
		return s
	}

	ds, err := diff.Parse(raw)
	if err != nil || len(ds.Files) == 0 {
		s.Note = "no extractable diff (binary or untracked)"
		return s
	}

	f := ds.Files[0]
	if f.IsBinary {
		s.Note = "no extractable diff (binary or untracked)"
		return s
	}

	s.Lines = f.ChangedLines(maxSnippetLines)
	if len(s.Lines) == 0 {
		s.Note = "diff present but no added/removed lines (context-only change)"
	}
	return s
}

// Render formats the digest as plain text. When colorize is set, snippet
// lines are syntax-highlighted for the terminal.
func (d *ChangeDigest) Render(colorize bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d file(s) changed\n", d.FileCount)
	if d.Stat != "" {
		b.WriteString(d.Stat)
		b.WriteString("\n")
	}

	for _, s := range d.Snippets {
		fmt.Fprintf(&b, "\n%s\n", s.Path)
		if s.Note != "" {
			fmt.Fprintf(&b, "  (%s)\n", s.Note)
			continue
		}
		lines := s.Lines
		if colorize {
			lines = diff.Colorize(s.Path, lines)
		}
		for _, l := range lines {
			fmt.Fprintf(&b, "  %s\n", l)
		}
	}

	if d.Omitted > 0 {
		fmt.Fprintf(&b, "\n… and %d more file(s) not previewed\n", d.Omitted)
	}

	return b.String()
}
