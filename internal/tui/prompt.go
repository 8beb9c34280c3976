// Package tui implements the interactive commit summary prompt.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the operator aborts the prompt.
var ErrCancelled = fmt.Errorf("summary prompt cancelled")

// Model is the Bubble Tea model for the single-field summary prompt.
type Model struct {
	input    textinput.Model
	category string // classifier label shown above the field
	prefix   string // timestamp prefix shown in the message preview

	done      bool
	cancelled bool
}

// NewModel creates the prompt model, pre-filled with the heuristic
// summary so the operator can accept it with a single keystroke.
func NewModel(category, prefix, defaultSummary string) Model {
	ti := textinput.New()
	ti.Placeholder = "commit summary"
	ti.CharLimit = 200
	ti.Width = 60
	ti.SetValue(defaultSummary)
	ti.CursorEnd()
	ti.Focus()

	return Model{
		input:    ti,
		category: category,
		prefix:   prefix,
	}
}

// Value returns the entered summary, trimmed.
func (m Model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, keys.Accept):
			if m.Value() != "" {
				m.done = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, keys.Clear):
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Commit summary"))
	b.WriteString("  ")
	b.WriteString(categoryStyle.Render("[" + m.category + "]"))
	b.WriteString("\n\n")

	b.WriteString(promptBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	if v := m.Value(); v != "" {
		b.WriteString(messagePreviewStyle.Render(fmt.Sprintf("→ %s - %s", m.prefix, v)))
	} else {
		b.WriteString(warnStyle.Render("summary must not be empty"))
	}
	b.WriteString("\n\n")

	b.WriteString(helpBar())

	return b.String()
}

func helpBar() string {
	parts := []string{
		helpKeyStyle.Render("enter") + helpBarStyle.Render(" accept"),
		helpKeyStyle.Render("C-u") + helpBarStyle.Render(" clear"),
		helpKeyStyle.Render("esc") + helpBarStyle.Render(" abort"),
	}
	return strings.Join(parts, helpBarStyle.Render("  ·  "))
}

// PromptSummary runs the prompt and returns the accepted summary. A
// cancelled prompt returns ErrCancelled.
func PromptSummary(category, prefix, defaultSummary string) (string, error) {
	p := tea.NewProgram(NewModel(category, prefix, defaultSummary))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("summary prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.cancelled || !m.done {
		return "", ErrCancelled
	}
	return m.Value(), nil
}
