// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/styles"
)

// State represents the ask session state for display.
type State string

// Session states.
const (
	StateReady     State = "ready"
	StateAnswering State = "answering"
	StateAnswered  State = "answered"
	StateError     State = "error"
)

// Bar displays session status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	model   string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateAnswering:
		if b.model != "" {
			return b.styles.Muted.Render(fmt.Sprintf("Loading response from %s LLM...", b.model))
		}
		return b.styles.Muted.Render("Loading response...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateAnswered:
		return b.styles.Normal.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.InputHelp()
	if b.state == StateAnswered || b.state == StateError {
		bindings = b.keymap.AnswerHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// Hints returns the bindings currently advertised.
func (b *Bar) Hints() []key.Binding {
	if b.state == StateAnswered || b.state == StateError {
		return b.keymap.AnswerHelp()
	}
	return b.keymap.InputHelp()
}

// SetState sets the current state.
func (b *Bar) SetState(state State) { b.state = state }

// State returns the current state.
func (b *Bar) State() State { return b.state }

// SetMessage sets the text shown for the answered and error states.
func (b *Bar) SetMessage(message string) { b.message = message }

// Message returns the current message.
func (b *Bar) Message() string { return b.message }

// SetModel sets the generating model's name.
func (b *Bar) SetModel(model string) { b.model = model }

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) { b.width = width }

// Width returns the current width.
func (b *Bar) Width() int { return b.width }

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
