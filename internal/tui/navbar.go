package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type ViewType int

const (
	ViewRepo ViewType = iota
	ViewTree
	ViewSummaries
	ViewCode
)

var viewNames = []string{"Repo", "Tree", "Summaries", "Code"}

func renderNavbar(active ViewType, repoLabel string, healthy bool, stats string, width int) string {
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Underline(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	var tabs string
	for i, name := range viewNames {
		if i > 0 {
			tabs += inactiveStyle.Render(" │ ")
		}
		if ViewType(i) == active {
			tabs += activeStyle.Render(name)
		} else {
			tabs += inactiveStyle.Render(name)
		}
	}

	left := " " + tabs
	if stats != "" {
		left += "   " + statsStyle.Render(stats)
	}

	health := downStyle.Render("● backend down")
	if healthy {
		health = okStyle.Render("● backend ok")
	}
	right := health
	if repoLabel != "" {
		right = statsStyle.Render(repoLabel) + "  " + health
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	padding := lipgloss.NewStyle().Width(gap)

	return left + padding.Render("") + right + " "
}

func renderStatusLine(msg string, isErr bool, width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if isErr {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}
	if lipgloss.Width(msg) > width-2 {
		msg = fmt.Sprintf("%.*s…", width-3, msg)
	}
	return style.Render(" " + msg)
}
