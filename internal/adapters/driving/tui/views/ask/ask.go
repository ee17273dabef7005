// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// reservedLines is the height taken by the input, status bar and frames.
const reservedLines = 7

// View shows the question input, a spinner while the model answers and
// a scrolling panel with the answer and its sources.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	spinner   spinner.Model
	viewport  viewport.Model
	statusbar *status.Bar

	query driving.QueryService
	ctx   context.Context

	answer    *domain.Answer
	err       error
	answering bool
	width     int
	height    int
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, query driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	bar := status.NewBar(s, km)
	if query != nil {
		bar.SetModel(query.ModelName())
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		spinner:   sp,
		viewport:  viewport.New(80, 24-reservedLines),
		statusbar: bar,
		query:     query,
		ctx:       context.Background(),
	}
	v.viewport.SetContent(v.renderAnswer())
	return v
}

// WithContext sets the context used for questions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerRequested:
		return v, v.ask(msg.Question)

	case messages.AnswerCompleted:
		v.handleAnswer(msg)
		return v, nil

	case spinner.TickMsg:
		if !v.answering {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.answering {
		return v, nil
	}

	if v.input.Focused() {
		if keymap.Matches(msg.String(), v.keymap.Ask) {
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			return v, v.ask(question)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.NewQuestion) {
		v.input.Reset()
		v.statusbar.Clear()
		return v, v.input.Focus()
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// ask starts answering a question in the background.
func (v *View) ask(question string) tea.Cmd {
	v.answering = true
	v.err = nil
	v.input.SetValue(question)
	v.input.Blur()
	v.statusbar.SetState(status.StateAnswering)

	query := v.query
	ctx := v.ctx
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		if query == nil {
			return messages.AnswerCompleted{Err: domain.ErrLLMUnavailable}
		}
		answer, err := query.Ask(ctx, question)
		return messages.AnswerCompleted{Answer: answer, Err: err}
	})
}

func (v *View) handleAnswer(msg messages.AnswerCompleted) {
	v.answering = false
	if msg.Err != nil {
		v.err = msg.Err
		v.answer = nil
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
	} else {
		v.answer = msg.Answer
		v.statusbar.SetState(status.StateAnswered)
		v.statusbar.SetMessage("Sources: " + domain.FormatSources(msg.Answer.Sources))
	}
	v.viewport.SetContent(v.renderAnswer())
	v.viewport.GotoTop()
}

// View renders the ask view.
func (v *View) View() string {
	var body string
	if v.answering {
		body = v.styles.Panel.Render(v.spinner.View() + " " +
			v.styles.Muted.Render("Thinking..."))
	} else {
		body = v.styles.Panel.Render(v.viewport.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.input.View(),
		body,
		v.statusbar.View(),
	)
}

func (v *View) renderAnswer() string {
	width := max(v.viewport.Width, 20)
	wrap := lipgloss.NewStyle().Width(width)

	switch {
	case v.err != nil:
		return v.styles.Error.Render(wrap.Render(v.err.Error()))
	case v.answer == nil:
		return v.styles.Muted.Render("Answers are grounded in GDPR Articles 1-21 and cite chunk ids.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Question.Render(wrap.Render(v.answer.Question)))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(wrap.Render(strings.TrimSpace(v.answer.Text))))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Sources.Render(fmt.Sprintf("Sources: %s", domain.FormatSources(v.answer.Sources))))
	return b.String()
}

// SetDimensions sizes the view to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.viewport.Width = max(width-4, 20)
	v.viewport.Height = max(height-reservedLines, 3)
	v.viewport.SetContent(v.renderAnswer())
}

// Answer returns the last answer, or nil.
func (v *View) Answer() *domain.Answer { return v.answer }

// Err returns the last error, or nil.
func (v *View) Err() error { return v.err }

// Answering reports whether a question is in flight.
func (v *View) Answering() bool { return v.answering }

// InputFocused reports whether keys go to the question input.
func (v *View) InputFocused() bool { return v.input.Focused() }

// Status returns the status bar state.
func (v *View) Status() status.State { return v.statusbar.State() }
