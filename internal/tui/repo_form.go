package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lotas/testwerk/internal/types"
)

// RepoForm collects the owner/repo pair before anything can be loaded.
type RepoForm struct {
	owner textinput.Model
	repo  textinput.Model
	focus int // 0 = owner, 1 = repo
}

func NewRepoForm() RepoForm {
	owner := textinput.New()
	owner.Placeholder = "owner"
	owner.CharLimit = 100
	owner.Focus()

	repo := textinput.New()
	repo.Placeholder = "repository"
	repo.CharLimit = 100

	return RepoForm{owner: owner, repo: repo}
}

// Value returns the entered repository, trimmed.
func (f RepoForm) Value() types.Repo {
	return types.Repo{
		Owner: strings.TrimSpace(f.owner.Value()),
		Name:  strings.TrimSpace(f.repo.Value()),
	}
}

// Complete reports whether both fields are filled in.
func (f RepoForm) Complete() bool {
	v := f.Value()
	return v.Owner != "" && v.Name != ""
}

func (f RepoForm) Update(msg tea.Msg) (RepoForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" {
		f.focus = (f.focus + 1) % 2
		if f.focus == 0 {
			f.owner.Focus()
			f.repo.Blur()
		} else {
			f.repo.Focus()
			f.owner.Blur()
		}
		return f, nil
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.owner, cmd = f.owner.Update(msg)
	} else {
		f.repo, cmd = f.repo.Update(msg)
	}
	return f, cmd
}

func (f RepoForm) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Load a GitHub repository"))
	b.WriteString("\n\n")
	b.WriteString("  Owner: " + f.owner.View() + "\n")
	b.WriteString("  Repo:  " + f.repo.View() + "\n\n")
	b.WriteString(hintStyle.Render("  tab: switch field · enter: load · q: quit"))
	return b.String()
}
