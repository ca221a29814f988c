package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/model"
)

const (
	maxColWidth = 28
	labelWidth  = 20
)

// selector cycles through a fixed set of choices with ←/→.
type selector struct {
	label   string
	choices []dashboard.Option
	idx     int
}

func newSelector(label string, choices []dashboard.Option) selector {
	return selector{label: label, choices: choices}
}

func (s *selector) move(d int) {
	n := len(s.choices)
	if n == 0 {
		return
	}
	s.idx = ((s.idx+d)%n + n) % n
}

// pick moves to the choice with id, reporting whether it exists.
func (s *selector) pick(id string) bool {
	for i, c := range s.choices {
		if c.ID == id {
			s.idx = i
			return true
		}
	}
	return false
}

func (s selector) current() (dashboard.Option, bool) {
	if len(s.choices) == 0 {
		return dashboard.Option{}, false
	}
	return s.choices[s.idx], true
}

func (s selector) View(focused bool) string {
	cur, ok := s.current()
	val := mutedStyle.Render("(vazio)")
	if ok {
		val = "‹ " + cur.String() + " ›"
		if focused {
			val = selectedStyle.Render(val)
		}
	}
	return fieldLine(s.label, val, focused)
}

func fieldLine(label, value string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = accentStyle.Render("> ")
	}
	pad := labelWidth - runewidth.StringWidth(label)
	if pad < 1 {
		pad = 1
	}
	return prefix + label + strings.Repeat(" ", pad) + value
}

// formField is a text input, or a selector when the field has choices.
type formField struct {
	field dashboard.Field
	input textinput.Model
	sel   selector
}

// form renders the attributes of an entity for create and edit.
type form struct {
	fields []formField
}

func newForm(e dashboard.Entity, values dashboard.Form) form {
	f := form{fields: make([]formField, len(e.Fields))}
	for i, fd := range e.Fields {
		ff := formField{field: fd}
		if fd.Selector() {
			opts := make([]dashboard.Option, len(fd.Choices))
			for j, c := range fd.Choices {
				opts[j] = dashboard.Option{ID: c}
			}
			ff.sel = newSelector(fd.Label, opts)
			ff.sel.pick(values[fd.Key])
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = fd.Label
			ti.CharLimit = 120
			ti.SetValue(values[fd.Key])
			ff.input = ti
		}
		f.fields[i] = ff
	}
	return f
}

func (f form) values() dashboard.Form {
	out := dashboard.Form{}
	for _, ff := range f.fields {
		if ff.field.Selector() {
			cur, _ := ff.sel.current()
			out[ff.field.Key] = cur.ID
			continue
		}
		out[ff.field.Key] = ff.input.Value()
	}
	return out
}

// focus gives keyboard focus to field i, or to none when i is out of range.
func (f *form) focus(i int) {
	for j := range f.fields {
		if f.fields[j].field.Selector() {
			continue
		}
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f form) View(focused int) string {
	lines := make([]string, len(f.fields))
	for i, ff := range f.fields {
		if ff.field.Selector() {
			lines[i] = ff.sel.View(i == focused)
			continue
		}
		lines[i] = fieldLine(ff.field.Label, ff.input.View(), i == focused)
	}
	return strings.Join(lines, "\n")
}

// buildTable turns a rendered collection into a bubbles table sized to its
// content.
func buildTable(t model.Table, height int) table.Model {
	cols := make([]table.Column, len(t.Columns))
	for i, c := range t.Columns {
		w := runewidth.StringWidth(c)
		for _, r := range t.Rows {
			if rw := runewidth.StringWidth(r[i]); rw > w {
				w = rw
			}
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		cols[i] = table.Column{Title: c, Width: w}
	}
	rows := make([]table.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = table.Row(r)
	}
	if height < 3 {
		height = 3
	}
	if n := len(rows) + 2; n < height {
		height = n
	}

	tb := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	st.Selected = selectedStyle
	tb.SetStyles(st)
	return tb
}

func countLabel(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
