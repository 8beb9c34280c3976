package classify

import (
	"fmt"
	"strings"
	"testing"
)

// fakeSource serves canned diffs per path.
type fakeSource struct {
	stat  string
	diffs map[string]string
	calls []string
}

func (f *fakeSource) DiffStat() (string, error) {
	return f.stat, nil
}

func (f *fakeSource) PathDiff(path string) (string, error) {
	f.calls = append(f.calls, path)
	return f.diffs[path], nil
}

func fileDiff(path string, changed ...string) string {
	var adds, dels int
	for _, l := range changed {
		if strings.HasPrefix(l, "+") {
			adds++
		} else if strings.HasPrefix(l, "-") {
			dels++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "index abc1234..def5678 100644\n--- a/%s\n+++ b/%s\n", path, path)
	fmt.Fprintf(&b, "@@ -1,%d +1,%d @@\n", dels, adds)
	for _, l := range changed {
		b.WriteString(l + "\n")
	}
	return b.String()
}

func TestDigestEmptyChangeSet(t *testing.T) {
	src := &fakeSource{}
	d := Digest(nil, src)

	if d.FileCount != 0 {
		t.Errorf("expected 0 files, got %d", d.FileCount)
	}
	if len(d.Snippets) != 0 {
		t.Errorf("expected no snippets, got %d", len(d.Snippets))
	}
	if len(src.calls) != 0 {
		t.Errorf("per-file extraction must not run on an empty set; got calls %v", src.calls)
	}
}

func TestDigestSnippets(t *testing.T) {
	src := &fakeSource{
		stat: " app.ts | 2 +-\n 1 file changed",
		diffs: map[string]string{
			"app.ts": fileDiff("app.ts", "-old line", "+new line"),
		},
	}

	d := Digest([]string{"app.ts"}, src)

	if d.FileCount != 1 {
		t.Fatalf("expected 1 file, got %d", d.FileCount)
	}
	if d.Stat == "" {
		t.Error("expected verbatim stat block")
	}
	if len(d.Snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(d.Snippets))
	}

	s := d.Snippets[0]
	if s.Note != "" {
		t.Errorf("unexpected note: %q", s.Note)
	}
	if len(s.Lines) != 2 || s.Lines[0] != "-old line" || s.Lines[1] != "+new line" {
		t.Errorf("unexpected snippet lines: %v", s.Lines)
	}
}

func TestDigestSnippetLineBound(t *testing.T) {
	var changed []string
	for i := 0; i < 30; i++ {
		changed = append(changed, fmt.Sprintf("+line %d", i))
	}
	src := &fakeSource{
		diffs: map[string]string{"big.ts": fileDiff("big.ts", changed...)},
	}

	d := Digest([]string{"big.ts"}, src)
	if n := len(d.Snippets[0].Lines); n != maxSnippetLines {
		t.Errorf("expected %d lines, got %d", maxSnippetLines, n)
	}
}

func TestDigestPreviewBound(t *testing.T) {
	var paths []string
	diffs := map[string]string{}
	for i := 0; i < 11; i++ {
		p := fmt.Sprintf("file%02d.ts", i)
		paths = append(paths, p)
		diffs[p] = fileDiff(p, "+x")
	}
	src := &fakeSource{diffs: diffs}

	d := Digest(paths, src)

	if len(d.Snippets) != maxPreviewFiles {
		t.Errorf("expected %d snippets, got %d", maxPreviewFiles, len(d.Snippets))
	}
	if d.Omitted != 1 {
		t.Errorf("expected exactly 1 omitted path, got %d", d.Omitted)
	}
	if !strings.Contains(d.Render(false), "1 more file(s)") {
		t.Errorf("render must note the omitted remainder:\n%s", d.Render(false))
	}
}

func TestDigestNotes(t *testing.T) {
	src := &fakeSource{
		diffs: map[string]string{
			"binary.png":  "", // no diff at all
			"context.txt": "diff --git a/context.txt b/context.txt\nindex abc1234..def5678 100644\n--- a/context.txt\n+++ b/context.txt\n@@ -1,2 +1,2 @@\n unchanged one\n unchanged two\n",
		},
	}

	d := Digest([]string{"binary.png", "context.txt"}, src)

	if note := d.Snippets[0].Note; !strings.Contains(note, "no extractable diff") {
		t.Errorf("binary path: unexpected note %q", note)
	}
	if note := d.Snippets[1].Note; !strings.Contains(note, "context-only") {
		t.Errorf("context-only path: unexpected note %q", note)
	}
}
