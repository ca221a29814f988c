package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/model"
)

type loansLoadedMsg struct {
	seq   int
	table model.Table
	loans []dashboard.Option
	msgs  gateway.Messages
}

func (m loansLoadedMsg) owner() int { return m.seq }

// returnScreen lists the open loans; enter returns the highlighted one.
type returnScreen struct {
	env
	header string
	data   model.Table
	loans  []dashboard.Option
	table  table.Model
	busy   bool
	msgs   gateway.Messages
}

func newReturnScreen(e env, header string) *returnScreen {
	return &returnScreen{env: e, header: header}
}

func (s *returnScreen) Init() tea.Cmd {
	s.busy = true
	return s.load()
}

func (s *returnScreen) load() tea.Cmd {
	ctx, ctl, seq := s.ctx, s.ctl, s.seq
	return func() tea.Msg {
		var msgs gateway.Messages
		t, loans := ctl.OpenLoans(ctx, &msgs)
		return loansLoadedMsg{seq: seq, table: t, loans: loans, msgs: msgs}
	}
}

// highlighted is the loan under the table cursor.
func (s *returnScreen) highlighted() (dashboard.Option, bool) {
	i := s.table.Cursor()
	if i < 0 || i >= len(s.loans) {
		return dashboard.Option{}, false
	}
	return s.loans[i], true
}

func (s *returnScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loansLoadedMsg:
		s.busy = false
		s.msgs = append(s.msgs, msg.msgs...)
		cur := s.table.Cursor()
		s.data, s.loans = msg.table, msg.loans
		s.table = buildTable(msg.table, s.height-8)
		if cur >= len(s.loans) {
			cur = len(s.loans) - 1
		}
		if cur > 0 {
			s.table.SetCursor(cur)
		}
		return s, nil

	case doneMsg:
		s.msgs = msg.msgs
		if !msg.ok {
			s.busy = false
			return s, nil
		}
		return s, s.load()

	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		if !s.data.Empty() {
			cur := s.table.Cursor()
			s.table = buildTable(s.data, s.height-8)
			s.table.SetCursor(cur)
		}
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "r":
			s.msgs = nil
			s.busy = true
			return s, s.load()
		case "enter":
			loan, ok := s.highlighted()
			if !ok {
				return s, nil
			}
			s.busy = true
			return s, s.giveBack(loan.ID)
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *returnScreen) giveBack(loanID string) tea.Cmd {
	ctx, ctl, seq := s.ctx, s.ctl, s.seq
	return func() tea.Msg {
		var msgs gateway.Messages
		ok := ctl.Return(ctx, &msgs, loanID)
		return doneMsg{seq: seq, ok: ok, msgs: msgs}
	}
}

func (s *returnScreen) View() string {
	var body string
	switch {
	case s.busy && s.data.Empty():
		body = mutedStyle.Render("Carregando...")
	case s.data.Empty():
		body = warnStyle.Render(dashboard.ResourceLoans.Empty())
	default:
		pick := ""
		if loan, ok := s.highlighted(); ok {
			pick = fieldLine("Empréstimo", selectedStyle.Render(loan.ID), true)
		}
		body = s.table.View() + "\n\n" +
			mutedStyle.Render("Selecione o ID do Empréstimo para Devolver") + "\n" + pick
	}
	return section(
		titleStyle.Render(s.header),
		body,
		renderMessages(s.msgs),
		helpStyle.Render("↑/↓ escolher • enter devolver • r recarregar"),
	)
}
