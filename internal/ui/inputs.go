package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/x/ansi"
)

// inputField names one field of the input panel.
type inputField int

const (
	fieldCSV inputField = iota
	fieldProducts
	fieldUser
	fieldCount
)

func (f inputField) label() string {
	switch f {
	case fieldCSV:
		return "Upload CSV File"
	case fieldProducts:
		return "Product Recommendations"
	case fieldUser:
		return "User Profile Recommendations"
	default:
		return ""
	}
}

func (f inputField) action() string {
	switch f {
	case fieldCSV:
		return "enter: Upload and Analyze"
	case fieldProducts:
		return "enter: Get Recommendations"
	case fieldUser:
		return "enter: Get User Recommendations"
	default:
		return ""
	}
}

// inputPanel holds the left-hand form.
type inputPanel struct {
	fields [fieldCount]textinput.Model
	busy   [fieldCount]bool
}

func newInputPanel(csv, products, user string) inputPanel {
	var p inputPanel
	placeholders := [fieldCount]string{
		"path/to/data.csv",
		"Enter products separated by commas",
		"Enter User ID",
	}
	values := [fieldCount]string{csv, products, user}
	for i := range p.fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "› "
		ti.CharLimit = 512
		ti.SetValue(values[i])
		p.fields[i] = ti
	}
	return p
}

func (p *inputPanel) focus(f inputField) {
	for i := range p.fields {
		if inputField(i) == f {
			p.fields[i].Focus()
		} else {
			p.fields[i].Blur()
		}
	}
}

func (p *inputPanel) blurAll() {
	for i := range p.fields {
		p.fields[i].Blur()
	}
}

func (p *inputPanel) value(f inputField) string {
	return p.fields[f].Value()
}

func (p *inputPanel) setWidth(width int) {
	for i := range p.fields {
		p.fields[i].Width = max(width-4, 1)
	}
}

// view renders the form; focused is the focused field or -1.
func (p *inputPanel) view(theme Theme, width int, focused inputField) string {
	styles := theme.Styles()
	bg := NewBgStyle(theme.Surface)

	var rows []string
	for i := range p.fields {
		f := inputField(i)
		labelStyle := styles.AccentText.Bold(true)
		if f == focused {
			labelStyle = styles.WarningText.Bold(true)
		}
		rows = append(rows, bg.Render(f.label(), labelStyle))
		rows = append(rows, p.fields[i].View())

		hint := f.action()
		if p.busy[i] {
			hint = "working..."
		}
		rows = append(rows, bg.Render(hint, styles.FaintText))
		rows = append(rows, "")
	}

	for i, row := range rows {
		rows[i] = bg.FillLine(ansi.Truncate(row, width, "…"), width)
	}
	return strings.Join(rows, "\n")
}
