package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/views/articles"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/views/ask"
)

// App is the interactive ask session following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	askView      *ask.View
	articlesView *articles.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		askView:      ask.NewView(s, km, ports.Query),
		articlesView: articles.NewView(s, ports.Articles),
		currentView:  messages.ViewAsk,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	a.articlesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("gdpr-rag"),
		a.askView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewArticles {
			return a, a.articlesView.Init()
		}
		return a, nil

	case messages.ArticlesLoaded:
		a.articlesView, cmd = a.articlesView.Update(msg)
		return a, cmd
	}

	// Answers and spinner ticks belong to the ask view whichever view
	// is showing.
	a.askView, cmd = a.askView.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewAsk:
		if keymap.Matches(key, a.keymap.SwitchView) {
			return a, changeView(messages.ViewArticles)
		}
		if !a.askView.InputFocused() && keymap.Matches(key, a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.ViewArticles:
		if keymap.Matches(key, a.keymap.SwitchView) || keymap.Matches(key, a.keymap.Back) {
			return a, changeView(messages.ViewAsk)
		}
		a.articlesView, cmd = a.articlesView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(key, a.keymap.Back) || keymap.Matches(key, a.keymap.Help) {
			a.currentView = messages.ViewAsk
		}
	}
	return a, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewArticles:
		return a.articlesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.askView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Ask:
  (type)      Enter a question
  enter       Ask
  n           New question after an answer
  j/k, ↑/↓    Scroll the answer
  tab         Article summaries

Articles:
  j/k, ↑/↓    Scroll
  tab, esc    Back to ask

  ctrl+c      Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// AskView returns the ask view.
func (a *App) AskView() *ask.View {
	return a.askView
}

// ArticlesView returns the articles view.
func (a *App) ArticlesView() *articles.View {
	return a.articlesView
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.askView.SetDimensions(width, height)
	a.articlesView.SetDimensions(width, height)
}
