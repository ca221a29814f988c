package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/model"
)

type listLoadedMsg struct {
	seq   int
	table model.Table
	msgs  gateway.Messages
}

func (m listLoadedMsg) owner() int { return m.seq }

// listScreen shows a whole collection as a table.
type listScreen struct {
	env
	res     dashboard.Resource
	header  string
	data    model.Table
	table   table.Model
	loading bool
	msgs    gateway.Messages
}

func newListScreen(e env, res dashboard.Resource, header string) *listScreen {
	return &listScreen{env: e, res: res, header: header}
}

func (s *listScreen) Init() tea.Cmd {
	s.loading = true
	return s.load()
}

func (s *listScreen) load() tea.Cmd {
	ctx, ctl, res, seq := s.ctx, s.ctl, s.res, s.seq
	return func() tea.Msg {
		var msgs gateway.Messages
		t := ctl.List(ctx, &msgs, res)
		return listLoadedMsg{seq: seq, table: t, msgs: msgs}
	}
}

func (s *listScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		s.loading = false
		s.data = msg.table
		s.msgs = msg.msgs
		s.table = buildTable(msg.table, s.height-6)
		return s, nil
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		if !s.data.Empty() {
			cur := s.table.Cursor()
			s.table = buildTable(s.data, s.height-6)
			s.table.SetCursor(cur)
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "r" && !s.loading {
			s.loading = true
			s.msgs = nil
			return s, s.load()
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *listScreen) View() string {
	var body string
	switch {
	case s.loading:
		body = mutedStyle.Render("Carregando...")
	case s.data.Empty():
		body = warnStyle.Render(s.res.Empty())
	default:
		body = s.table.View() + "\n" + mutedStyle.Render(countLabel(len(s.data.Rows), "registro", "registros"))
	}
	return section(
		titleStyle.Render(s.header),
		body,
		renderMessages(s.msgs),
		helpStyle.Render("↑/↓ rolar • r recarregar"),
	)
}
