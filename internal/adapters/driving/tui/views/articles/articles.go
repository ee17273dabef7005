// Package articles provides the article summary view for the TUI.
package articles

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
)

// View lists the summaries of the indexed articles.
type View struct {
	styles   *styles.Styles
	viewport viewport.Model
	service  driving.ArticleService
	ctx      context.Context

	articles []domain.ArticleDocument
	err      error
	loaded   bool
}

// NewView creates a new articles view. The service may be nil.
func NewView(s *styles.Styles, service driving.ArticleService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		viewport: viewport.New(80, 20),
		service:  service,
		ctx:      context.Background(),
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the summaries once.
func (v *View) Init() tea.Cmd {
	if v.loaded || v.service == nil {
		return nil
	}
	service := v.service
	ctx := v.ctx
	return func() tea.Msg {
		docs, err := service.List(ctx)
		return messages.ArticlesLoaded{Articles: docs, Err: err}
	}
}

// Update handles messages for the articles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ArticlesLoaded:
		v.loaded = true
		v.articles = msg.Articles
		v.err = msg.Err
		v.viewport.SetContent(v.render())
		return v, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the articles view.
func (v *View) View() string {
	title := v.styles.Title.Render("GDPR Articles 1-21")
	return lipgloss.JoinVertical(lipgloss.Left, title, v.styles.Panel.Render(v.viewport.View()))
}

func (v *View) render() string {
	if v.err != nil {
		return v.styles.Error.Render(v.err.Error())
	}
	if len(v.articles) == 0 {
		return v.styles.Muted.Render("No articles loaded.")
	}

	wrap := lipgloss.NewStyle().Width(max(v.viewport.Width, 20))
	lines := make([]string, 0, len(v.articles))
	for _, a := range v.articles {
		summary := strings.ReplaceAll(a.Summary, "**", "")
		lines = append(lines, wrap.Render(fmt.Sprintf("%2d. %s", a.ArticleNumber, summary)))
	}
	return strings.Join(lines, "\n\n")
}

// SetDimensions sizes the view to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = max(width-4, 20)
	v.viewport.Height = max(height-5, 3)
	v.viewport.SetContent(v.render())
}

// Articles returns the loaded articles.
func (v *View) Articles() []domain.ArticleDocument { return v.articles }

// Err returns the load error, or nil.
func (v *View) Err() error { return v.err }
