package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var guideSteps = []string{
	"Upload CSV files to analyze your data.",
	"Enter product names to get recommendations.",
	"Enter user IDs to view personalized recommendations.",
	"Search within results and navigate to specific matches.",
}

var guideSectionTitles = []string{"Input", "Search", "Scrolling", "General"}

// guideModal explains the tool and lists the key bindings.
type guideModal struct{}

// Update closes the guide on esc, ?, enter or q; other keys are swallowed.
func (g guideModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil, false
	}
	if keyMsg.String() == "ctrl+c" {
		return g, tea.Quit, true
	}
	if key.Matches(keyMsg, keys.Escape, keys.Help, keys.Confirm) || keyMsg.String() == "q" {
		return g, nil, true
	}
	return g, nil, false
}

// View renders the guide centered in the given area.
func (g guideModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	keys := DefaultKeyMap()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Welcome to shoplens"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("This tool allows you to:"))
	b.WriteString("\n")
	for i, step := range guideSteps {
		b.WriteString(styles.AccentText.Render(fmt.Sprintf(" %d. ", i+1)))
		b.WriteString(styles.Text.Render(step))
		b.WriteString("\n")
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)).Width(12)
	for i, group := range keys.FullHelp() {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(guideSectionTitles[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("esc / ? to close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(64, max(width-4, 20))).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
