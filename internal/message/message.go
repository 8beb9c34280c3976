// Package message composes the final commit message from a timestamp
// prefix and a summary line.
package message

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptySummary is returned when the summary is empty after trimming.
var ErrEmptySummary = errors.New("empty commit summary")

// Prefix formats local wall-clock time as the fixed-width MMdd:HHmm
// stamp. It is computed at composition time, not at run start.
func Prefix(t time.Time) string {
	return t.Format("0102:1504")
}

// Compose joins the prefix and summary into the commit message. The
// summary is trimmed and reduced to a single logical line first; an empty
// result is an error, never an empty message.
func Compose(prefix, summary string) (string, error) {
	summary = strings.TrimSpace(summary)
	if i := strings.IndexByte(summary, '\n'); i >= 0 {
		summary = strings.TrimSpace(summary[:i])
	}
	if summary == "" {
		return "", ErrEmptySummary
	}
	return fmt.Sprintf("%s - %s", prefix, summary), nil
}
