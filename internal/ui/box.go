package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderBox draws content inside a rounded border of the given outer size,
// with title embedded in the top edge. The border color follows focus.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return ""
	}
	borderColor := m.theme.Border
	bgColor := m.theme.Surface
	if focused {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor)).Background(lipgloss.Color(m.theme.Background))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Background(lipgloss.Color(m.theme.Background)).Bold(focused)

	// Top edge: ╭─ Title ───╮
	inner := width - 2
	title = ansi.Truncate(title, max(inner-4, 0), "…")
	fill := max(inner-ansi.StringWidth(title)-3, 0)
	top := edge.Render(border.TopLeft+border.Top+" ") +
		titleStyle.Render(title) +
		edge.Render(" "+strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(bgColor)).
		Width(inner).
		Height(height - 2).
		MaxHeight(height - 1).
		Render(content)

	return top + "\n" + body
}

// renderHeader renders the title line with service status and the latest
// status message.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("shoplens", styles.Logo)}
	if m.apiURL != "" {
		parts = append(parts, bg.Render(truncate(m.apiURL, maxHeaderURL), styles.MutedText))
	}
	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("service offline", styles.DangerText))
	case m.snapshot.Reachable:
		parts = append(parts, bg.Render("service online", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("connecting...", styles.FaintText))
	}
	if m.status.text != "" {
		style := styles.InfoText
		if m.status.isErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(m.status.text, style))
	}

	line := bg.Join(parts, " │ ")
	return bg.FillLine(ansi.Truncate(bg.Space()+line, m.width, "…"), m.width)
}

// renderCommandBar renders the short key help.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	line := bg.Space() + bg.Join(parts, "  ")
	return bg.FillLine(ansi.Truncate(line, m.width, "…"), m.width)
}
