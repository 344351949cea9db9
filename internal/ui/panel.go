package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/shoplens/internal/highlight"
	"github.com/five82/shoplens/internal/resulttree"
)

// panelID names a result panel.
type panelID int

const (
	panelProducts panelID = iota
	panelUser
	panelForecast
)

func (id panelID) title() string {
	switch id {
	case panelProducts:
		return "Product Recommendations"
	case panelUser:
		return "User Profile Recommendations"
	case panelForecast:
		return "Sales Forecast (30 days)"
	default:
		return "Results"
	}
}

// Scroll animation settings.
const (
	scrollFrames     = 8
	scrollFrameDelay = 16 * time.Millisecond
)

// scrollFrameMsg advances a panel's scroll animation by one frame.
type scrollFrameMsg struct {
	panel panelID
	gen   int
}

// resultPanel shows one result tree with its own search box. It implements
// highlight.Region over its viewport.
type resultPanel struct {
	id    panelID
	tree  *resulttree.Tree
	query string

	rendered highlight.Rendered
	layout   highlight.Layout
	active   int // ordinal of the current match, -1 for none

	// Display rows after wrapping to the viewport width, and the row
	// holding the start of each match.
	rowCount  int
	matchRows []int

	viewport  viewport.Model
	search    textinput.Model
	searching bool

	// Pending scroll animation frames; gen invalidates stale ticks.
	frames []int
	gen    int
}

var _ highlight.Region = (*resultPanel)(nil)

func newResultPanel(id panelID) *resultPanel {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/ "
	ti.CharLimit = 120

	return &resultPanel{
		id:       id,
		active:   -1,
		viewport: viewport.New(0, 0),
		search:   ti,
	}
}

// populated reports whether the panel has received a tree. Panels never
// return to the empty state.
func (p *resultPanel) populated() bool {
	return p.tree != nil
}

// MatchLine implements highlight.Region. Rows count wrapped display rows.
func (p *resultPanel) MatchLine(ordinal int) (int, bool) {
	if ordinal < 0 || ordinal >= len(p.matchRows) {
		return 0, false
	}
	return p.matchRows[ordinal], true
}

// Height implements highlight.Region.
func (p *resultPanel) Height() int {
	return p.viewport.Height
}

// ScrollTo implements highlight.Region by queueing an eased scroll.
func (p *resultPanel) ScrollTo(offset int) {
	offset = min(max(offset, 0), p.maxOffset())
	p.gen++
	p.frames = highlight.ScrollSteps(p.viewport.YOffset, offset, scrollFrames)
}

func (p *resultPanel) maxOffset() int {
	return max(p.rowCount-p.viewport.Height, 0)
}

// animate returns the command driving pending scroll frames, if any.
func (p *resultPanel) animate() tea.Cmd {
	if len(p.frames) == 0 {
		return nil
	}
	msg := scrollFrameMsg{panel: p.id, gen: p.gen}
	return tea.Tick(scrollFrameDelay, func(time.Time) tea.Msg { return msg })
}

// step applies the next animation frame for msg.
func (p *resultPanel) step(msg scrollFrameMsg) tea.Cmd {
	if msg.gen != p.gen || len(p.frames) == 0 {
		return nil
	}
	p.viewport.SetYOffset(p.frames[0])
	p.frames = p.frames[1:]
	return p.animate()
}

// stopAnimation drops pending frames, e.g. when the user scrolls manually.
func (p *resultPanel) stopAnimation() {
	p.gen++
	p.frames = nil
}

// setTree replaces the displayed tree, keeping the current query.
func (p *resultPanel) setTree(tree *resulttree.Tree, theme Theme) {
	if tree == nil {
		tree = resulttree.New()
	}
	p.tree = tree
	p.stopAnimation()
	p.rebuild(theme)
}

// setQuery re-renders the panel for a new query. Navigation is separate.
func (p *resultPanel) setQuery(query string, theme Theme) {
	if query == p.query {
		return
	}
	p.query = query
	p.active = -1
	p.rebuild(theme)
}

// rebuild recomputes the rendered form and swaps the viewport content in one
// step.
func (p *resultPanel) rebuild(theme Theme) {
	p.rendered = highlight.Render(p.tree, p.query)
	p.layout = p.rendered.Layout()
	if p.active >= p.layout.Matches() {
		p.active = -1
	}
	if p.layout.Matches() == 0 {
		p.active = -1
	}
	p.viewport.SetContent(p.renderContent(theme))
}

// focusFirst moves to the first match in canonical order.
func (p *resultPanel) focusFirst(theme Theme) tea.Cmd {
	if !highlight.FocusFirstMatch(p) {
		return nil
	}
	p.active = 0
	p.viewport.SetContent(p.renderContent(theme))
	return p.animate()
}

// cycleMatch moves the active match by delta, wrapping around.
func (p *resultPanel) cycleMatch(delta int, theme Theme) tea.Cmd {
	total := p.layout.Matches()
	if total == 0 {
		return nil
	}
	next := 0
	if p.active >= 0 {
		next = ((p.active+delta)%total + total) % total
	} else if delta < 0 {
		next = total - 1
	}
	if !highlight.FocusMatch(p, next) {
		return nil
	}
	p.active = next
	p.viewport.SetContent(p.renderContent(theme))
	return p.animate()
}

// resize adapts the viewport to the panel's inner box size.
func (p *resultPanel) resize(width, height int, theme Theme) {
	// One row for the search line.
	p.viewport.Width = max(width, 0)
	p.viewport.Height = max(height-1, 0)
	p.search.Width = max(width-4, 0)
	if p.populated() {
		p.viewport.SetContent(p.renderContent(theme))
	}
}

// renderContent builds the display rows for the layout. Lines wider than the
// viewport wrap onto indented continuation rows, so every match stays on
// screen once its row is scrolled into view. It also records the row of each
// match ordinal.
func (p *resultPanel) renderContent(theme Theme) string {
	styles := theme.Styles()
	bg := NewBgStyle(theme.Surface)
	width := p.viewport.Width

	p.matchRows = make([]int, p.layout.Matches())
	if len(p.layout.Lines) == 0 {
		p.rowCount = 1
		return bg.FillLine(bg.Render("(empty result)", styles.FaintText), width)
	}

	valueStyle := styles.Value
	if _, isErr := p.tree.ErrorMessage(); isErr {
		valueStyle = styles.DangerText
	}
	plain := func(style lipgloss.Style) func(string) string {
		return func(text string) string { return bg.Render(text, style) }
	}

	var rows []string
	for _, line := range p.layout.Lines {
		indent := line.Depth * 2
		w := newRowWrapper(bg, width, indent+2)
		base := len(rows)
		spans := func(list []highlight.Span, style lipgloss.Style) {
			for _, s := range list {
				render := plain(style)
				switch {
				case s.Kind == highlight.Match && s.Ordinal == p.active:
					render = func(text string) string { return styles.ActiveMatch.Render(text) }
				case s.Kind == highlight.Match:
					render = func(text string) string { return styles.Match.Render(text) }
				}
				row := w.write(s.Text, render)
				if s.Ordinal >= 0 && s.Ordinal < len(p.matchRows) {
					p.matchRows[s.Ordinal] = base + row
				}
			}
		}

		w.write(strings.Repeat(" ", indent), plain(styles.Text))
		if line.Leaf {
			w.write("• ", plain(styles.FaintText))
			spans(line.Key, styles.Key)
			w.write(": ", plain(styles.FaintText))
			spans(line.Value, valueStyle)
		} else {
			w.write("▾ ", plain(styles.AccentText))
			spans(line.Key, styles.Key.Underline(true))
		}
		rows = append(rows, w.finish()...)
	}
	p.rowCount = len(rows)
	return strings.Join(rows, "\n")
}

// matchStatus summarizes the search state for the panel title.
func (p *resultPanel) matchStatus() string {
	if !highlight.NewMatcher(p.query).Active() {
		return ""
	}
	total := p.layout.Matches()
	switch {
	case total == 0:
		return "no matches"
	case p.active < 0:
		return fmt.Sprintf("%d matches", total)
	default:
		return fmt.Sprintf("%d/%d", p.active+1, total)
	}
}

// view renders the panel body: search line plus viewport.
func (p *resultPanel) view(theme Theme, focused bool) string {
	styles := theme.Styles()
	bg := NewBgStyle(theme.Surface)
	width := p.viewport.Width

	var searchLine string
	switch {
	case p.searching:
		searchLine = p.search.View()
	case p.query != "":
		searchLine = bg.Render("/ ", styles.FaintText) + bg.Render(p.query, styles.WarningText)
	case focused:
		searchLine = bg.Render("press / to search", styles.FaintText)
	}
	searchLine = bg.FillLine(ansi.Truncate(searchLine, width, "…"), width)

	return lipgloss.JoinVertical(lipgloss.Left, searchLine, p.viewport.View())
}
