package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lotas/testwerk/internal/types"
)

// SummariesView lists AI test-case summaries and lets the user pick one.
type SummariesView struct {
	Summaries []types.Summary
	Cursor    int
	Offset    int
	Width     int
	Height    int
}

// Current returns the summary under the cursor, or nil.
func (v SummariesView) Current() *types.Summary {
	if v.Cursor >= 0 && v.Cursor < len(v.Summaries) {
		return &v.Summaries[v.Cursor]
	}
	return nil
}

func (v *SummariesView) MoveUp() {
	if v.Cursor > 0 {
		v.Cursor--
	}
	if v.Cursor < v.Offset {
		v.Offset = v.Cursor
	}
}

func (v *SummariesView) MoveDown() {
	if v.Cursor < len(v.Summaries)-1 {
		v.Cursor++
	}
	rows := v.Height
	if rows < 1 {
		rows = 1
	}
	if v.Cursor >= v.Offset+rows {
		v.Offset = v.Cursor - rows + 1
	}
}

func (v SummariesView) View() string {
	if len(v.Summaries) == 0 {
		return "No summaries yet. Select files in the tree and press s."
	}

	cursorStyle := lipgloss.NewStyle().Bold(true).Reverse(true)
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	rows := v.Height
	if rows < 1 {
		rows = 20
	}
	end := v.Offset + rows
	if end > len(v.Summaries) {
		end = len(v.Summaries)
	}

	var b strings.Builder
	for i := v.Offset; i < end; i++ {
		s := v.Summaries[i]
		text := s.Summary
		maxLen := v.Width - 8
		if maxLen > 10 && len(text) > maxLen {
			text = text[:maxLen-1] + "…"
		}
		line := fmt.Sprintf("%s %s", idStyle.Render(fmt.Sprintf("%3d.", s.ID)), text)
		if i == v.Cursor {
			for lipgloss.Width(line) < v.Width {
				line += " "
			}
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
