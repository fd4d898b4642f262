package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CodeView shows generated test code in a scrollable viewport.
type CodeView struct {
	vp    viewport.Model
	title string
	ready bool
}

func (v *CodeView) SetSize(width, height int) {
	if !v.ready {
		v.vp = viewport.New(width, height)
		v.ready = true
	} else {
		v.vp.Width = width
		v.vp.Height = height
	}
}

func (v *CodeView) SetContent(title, code string) {
	v.title = title
	if v.ready {
		v.vp.SetContent(code)
		v.vp.GotoTop()
	}
}

func (v CodeView) Update(msg tea.Msg) (CodeView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v CodeView) View() string {
	if !v.ready || v.title == "" {
		return "No generated code yet. Pick a summary and press enter."
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	return titleStyle.Render(v.title) + "\n" + v.vp.View()
}
