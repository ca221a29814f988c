package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/model"
)

type recordsLoadedMsg struct {
	seq     int
	records []model.Record
	msgs    gateway.Messages
}

func (m recordsLoadedMsg) owner() int { return m.seq }

// createdMsg ends an add; the create form is cleared on success.
type createdMsg struct{ doneMsg }

// manageScreen has a create form on top and, below it, a record selector
// with an edit form for the selected record.
//
// Focus runs over the create fields, then the record selector, then the
// edit fields.
type manageScreen struct {
	env
	entity  dashboard.Entity
	header  string
	create  form
	records []model.Record
	picker  selector
	edit    form
	focus   int
	busy    bool
	msgs    gateway.Messages
}

func newManageScreen(e env, entity dashboard.Entity, header string) *manageScreen {
	s := &manageScreen{
		env:    e,
		entity: entity,
		header: header,
		create: newForm(entity, entity.NewForm()),
		picker: newSelector("Registro", nil),
	}
	s.setFocus(0)
	return s
}

func (s *manageScreen) Init() tea.Cmd {
	s.busy = true
	return s.load()
}

func (s *manageScreen) load() tea.Cmd {
	ctx, ctl, res, seq := s.ctx, s.ctl, s.entity.Resource, s.seq
	return func() tea.Msg {
		var msgs gateway.Messages
		recs, _ := ctl.Records(ctx, &msgs, res)
		return recordsLoadedMsg{seq: seq, records: recs, msgs: msgs}
	}
}

// pickerIndex is the focus position of the record selector.
func (s *manageScreen) pickerIndex() int { return len(s.create.fields) }

func (s *manageScreen) focusCount() int {
	if len(s.records) == 0 {
		return len(s.create.fields) + 1
	}
	return 2*len(s.create.fields) + 1
}

func (s *manageScreen) setFocus(i int) {
	n := s.focusCount()
	s.focus = ((i % n) + n) % n
	s.create.focus(s.focus)
	s.edit.focus(s.focus - s.pickerIndex() - 1)
}

// focusedSelector returns the selector under focus, nil on a text field.
func (s *manageScreen) focusedSelector() *selector {
	p := s.pickerIndex()
	switch {
	case s.focus < p:
		if f := &s.create.fields[s.focus]; f.field.Selector() {
			return &f.sel
		}
	case s.focus == p:
		return &s.picker
	default:
		if f := &s.edit.fields[s.focus-p-1]; f.field.Selector() {
			return &f.sel
		}
	}
	return nil
}

// selected is the record the edit section works on.
func (s *manageScreen) selected() (string, bool) {
	o, ok := s.picker.current()
	return o.ID, ok
}

// selectRecord pre-populates the edit form from the picked record.
func (s *manageScreen) selectRecord() {
	s.edit = form{}
	if id, ok := s.selected(); ok {
		for _, r := range s.records {
			if r.ID() == id {
				s.edit = newForm(s.entity, s.entity.FormFrom(r))
				break
			}
		}
	}
	s.setFocus(s.focus)
}

func (s *manageScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		s.busy = false
		s.msgs = append(s.msgs, msg.msgs...)
		prev, _ := s.selected()
		s.records = msg.records
		s.picker.choices = dashboard.RecordOptions(msg.records)
		if !s.picker.pick(prev) && s.picker.idx >= len(s.picker.choices) {
			s.picker.idx = 0
		}
		s.selectRecord()
		return s, nil

	case createdMsg:
		if msg.ok {
			s.create = newForm(s.entity, s.entity.NewForm())
			s.setFocus(s.focus)
		}
		return s.finish(msg.doneMsg)

	case doneMsg:
		return s.finish(msg)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			s.setFocus(s.focus + 1)
			return s, nil
		case "shift+tab", "up":
			s.setFocus(s.focus - 1)
			return s, nil
		case "left", "right":
			if sel := s.focusedSelector(); sel != nil {
				d := 1
				if msg.String() == "left" {
					d = -1
				}
				sel.move(d)
				if sel == &s.picker {
					s.selectRecord()
				}
				return s, nil
			}
		case "ctrl+a":
			return s, s.run(s.add())
		case "ctrl+u":
			return s, s.run(s.update())
		case "ctrl+d":
			return s, s.run(s.remove())
		case "ctrl+r":
			s.msgs = nil
			s.busy = true
			return s, s.load()
		}
	}
	return s, s.updateInput(msg)
}

// finish shows the outcome of a mutation and re-fetches after a success.
func (s *manageScreen) finish(msg doneMsg) (screen, tea.Cmd) {
	s.msgs = msg.msgs
	if !msg.ok {
		s.busy = false
		return s, nil
	}
	return s, s.load()
}

// run marks the screen busy while cmd is in flight.
func (s *manageScreen) run(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		s.busy = true
	}
	return cmd
}

func (s *manageScreen) updateInput(msg tea.Msg) tea.Cmd {
	p := s.pickerIndex()
	var f *formField
	switch {
	case s.focus < p:
		f = &s.create.fields[s.focus]
	case s.focus > p:
		f = &s.edit.fields[s.focus-p-1]
	}
	if f == nil || f.field.Selector() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (s *manageScreen) add() tea.Cmd {
	ctx, ctl, e, seq := s.ctx, s.ctl, s.entity, s.seq
	values := s.create.values()
	return func() tea.Msg {
		var msgs gateway.Messages
		_, ok := ctl.Create(ctx, &msgs, e, values)
		return createdMsg{doneMsg{seq: seq, ok: ok, msgs: msgs}}
	}
}

func (s *manageScreen) update() tea.Cmd {
	id, ok := s.selected()
	if !ok {
		s.msgs = gateway.Messages{{Level: gateway.LevelInfo, Text: s.entity.Resource.Empty()}}
		return nil
	}
	ctx, ctl, e, seq := s.ctx, s.ctl, s.entity, s.seq
	values := s.edit.values()
	return func() tea.Msg {
		var msgs gateway.Messages
		ok := ctl.Update(ctx, &msgs, e, id, values)
		return doneMsg{seq: seq, ok: ok, msgs: msgs}
	}
}

func (s *manageScreen) remove() tea.Cmd {
	id, ok := s.selected()
	if !ok {
		s.msgs = gateway.Messages{{Level: gateway.LevelInfo, Text: s.entity.Resource.Empty()}}
		return nil
	}
	ctx, ctl, e, seq := s.ctx, s.ctl, s.entity, s.seq
	return func() tea.Msg {
		var msgs gateway.Messages
		ok := ctl.Delete(ctx, &msgs, e, id)
		return doneMsg{seq: seq, ok: ok, msgs: msgs}
	}
}

func (s *manageScreen) View() string {
	p := s.pickerIndex()
	editFocus := -1
	if s.focus > p {
		editFocus = s.focus - p - 1
	}

	var edit string
	if len(s.records) == 0 {
		edit = warnStyle.Render(s.entity.Resource.Empty())
	} else {
		edit = mutedStyle.Render(s.entity.SelectPrompt()) + "\n" +
			s.picker.View(s.focus == p) + "\n\n" +
			s.edit.View(editFocus)
	}

	status := ""
	if s.busy {
		status = mutedStyle.Render("Carregando...")
	}
	return section(
		titleStyle.Render(s.header),
		accentStyle.Render(s.entity.AddTitle())+"\n"+s.create.View(s.focus),
		accentStyle.Render(s.entity.EditTitle())+"\n"+edit,
		status,
		renderMessages(s.msgs),
		helpStyle.Render("tab/↑/↓ mover • ←/→ escolher • ctrl+a adicionar • ctrl+u atualizar • ctrl+d excluir • ctrl+r recarregar"),
	)
}
