// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// AnswerRequested is sent when a question is submitted.
type AnswerRequested struct {
	Question string
}

// AnswerCompleted carries the model's answer back to the ask view.
type AnswerCompleted struct {
	Answer *domain.Answer
	Err    error
}

// ArticlesLoaded carries the article summaries.
type ArticlesLoaded struct {
	Articles []domain.ArticleDocument
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question input and answer view.
	ViewAsk ViewType = iota
	// ViewArticles lists the article summaries.
	ViewArticles
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewArticles:
		return "articles"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
