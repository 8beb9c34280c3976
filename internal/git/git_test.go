package git

import (
	"testing"
)

const sampleStatus = ` M src/app.ts
A  src/api/client.ts
?? notes.txt
R  old_name.go -> new_name.go
D  legacy/removed.js
`

func TestParseStatus(t *testing.T) {
	paths := parseStatus(sampleStatus)

	want := []string{
		"src/app.ts",
		"src/api/client.ts",
		"notes.txt",
		"new_name.go",
		"legacy/removed.js",
	}

	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d: expected %q, got %q", i, want[i], p)
		}
	}
}

func TestParseStatusSkipsShortLines(t *testing.T) {
	// Truncated or malformed lines must be skipped, never fatal.
	paths := parseStatus(" M\nM\n\n?? ok.txt\nXY \n")

	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %d: %v", len(paths), paths)
	}
	if paths[0] != "ok.txt" {
		t.Errorf("expected %q, got %q", "ok.txt", paths[0])
	}
}

func TestParseStatusEmpty(t *testing.T) {
	if paths := parseStatus(""); len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestParseStatusQuotedPath(t *testing.T) {
	paths := parseStatus("?? \"file with space.txt\"\n")
	if len(paths) != 1 || paths[0] != "file with space.txt" {
		t.Errorf("expected unquoted path, got %v", paths)
	}
}
