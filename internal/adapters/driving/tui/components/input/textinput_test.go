package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionInput(t *testing.T) {
	in := NewQuestionInput(nil)

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Equal(t, "", in.Value())
	assert.Equal(t, 60, in.Width())
	assert.NotNil(t, in.Init())
}

func TestQuestionInput_Typing(t *testing.T) {
	in := NewQuestionInput(nil)

	for _, r := range "consent" {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "consent", in.Value())

	in.Reset()
	assert.Equal(t, "", in.Value())
}

func TestQuestionInput_FocusBlur(t *testing.T) {
	in := NewQuestionInput(nil)

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())
}

func TestQuestionInput_SetWidth(t *testing.T) {
	in := NewQuestionInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 88, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, minWidth, in.textinput.Width)
}

func TestQuestionInput_View(t *testing.T) {
	in := NewQuestionInput(nil)
	in.SetValue("right to erasure")

	view := in.View()
	assert.Contains(t, view, "Ask:")
	assert.Contains(t, view, "right to erasure")
}
