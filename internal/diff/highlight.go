package diff

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	markerAddStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	markerDelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
)

// Colorize renders snippet lines (as produced by ChangedLines, leading
// +/- marker included) with syntax colors for the given filename. When no
// lexer matches the file, the lines come back with only the markers
// colored.
func Colorize(filename string, lines []string) []string {
	markers := make([]string, len(lines))
	source := make([]string, len(lines))
	for i, line := range lines {
		if len(line) > 0 && (line[0] == '+' || line[0] == '-') {
			markers[i] = string(line[0])
			source[i] = line[1:]
		} else {
			source[i] = line
		}
	}

	highlighted := highlightLines(filename, source)

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = styledMarker(markers[i]) + highlighted[i]
	}
	return out
}

func styledMarker(marker string) string {
	switch marker {
	case "+":
		return markerAddStyle.Render("+")
	case "-":
		return markerDelStyle.Render("-")
	default:
		return marker
	}
}

// highlightLines tokenizes source lines with chroma and renders each token
// in its style color. Returns exactly one string per input line.
func highlightLines(filename string, lines []string) []string {
	lexer := lexerForFile(filename)
	if lexer == nil {
		return lines
	}

	iterator, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return lines
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	result := make([]string, 0, len(lines))
	var current strings.Builder

	for _, token := range iterator.Tokens() {
		// Tokens can span multiple lines; split and flush at each break.
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			if part == "" {
				continue
			}
			if color := tokenColor(style, token.Type); color != "" {
				current.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(part))
			} else {
				current.WriteString(part)
			}
		}
	}
	result = append(result, current.String())

	for len(result) < len(lines) {
		result = append(result, "")
	}
	return result[:len(lines)]
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
