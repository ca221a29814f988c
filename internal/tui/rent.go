package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
)

type rentLoadedMsg struct {
	seq     int
	choices dashboard.RentChoices
	ok      bool
	msgs    gateway.Messages
}

func (m rentLoadedMsg) owner() int { return m.seq }

// rentScreen offers users and available bikes; enter opens the loan.
type rentScreen struct {
	env
	header string
	users  selector
	bikes  selector
	ready  bool
	focus  int
	busy   bool
	msgs   gateway.Messages
}

func newRentScreen(e env, header string) *rentScreen {
	return &rentScreen{
		env:    e,
		header: header,
		users:  newSelector("Selecione o Usuário", nil),
		bikes:  newSelector("Selecione a Bicicleta", nil),
	}
}

func (s *rentScreen) Init() tea.Cmd {
	s.busy = true
	return s.load()
}

func (s *rentScreen) load() tea.Cmd {
	ctx, ctl, seq := s.ctx, s.ctl, s.seq
	return func() tea.Msg {
		var msgs gateway.Messages
		choices, ok := ctl.LoadRent(ctx, &msgs)
		return rentLoadedMsg{seq: seq, choices: choices, ok: ok, msgs: msgs}
	}
}

func (s *rentScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rentLoadedMsg:
		s.busy = false
		s.msgs = append(s.msgs, msg.msgs...)
		s.ready = msg.ok
		prevUser, _ := s.users.current()
		s.users.choices, s.bikes.choices = msg.choices.Users, msg.choices.Bikes
		if !s.users.pick(prevUser.ID) {
			s.users.idx = 0
		}
		s.bikes.idx = 0
		return s, nil

	case doneMsg:
		s.msgs = msg.msgs
		if !msg.ok {
			s.busy = false
			return s, nil
		}
		return s, s.load()

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if msg.String() == "r" {
			s.msgs = nil
			s.busy = true
			return s, s.load()
		}
		if !s.ready {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			s.focus = 1 - s.focus
		case "left":
			s.focused().move(-1)
		case "right":
			s.focused().move(1)
		case "enter":
			s.busy = true
			return s, s.rent()
		}
	}
	return s, nil
}

func (s *rentScreen) focused() *selector {
	if s.focus == 0 {
		return &s.users
	}
	return &s.bikes
}

func (s *rentScreen) rent() tea.Cmd {
	ctx, ctl, seq := s.ctx, s.ctl, s.seq
	user, _ := s.users.current()
	bike, _ := s.bikes.current()
	return func() tea.Msg {
		var msgs gateway.Messages
		_, ok := ctl.Rent(ctx, &msgs, user, bike)
		return doneMsg{seq: seq, ok: ok, msgs: msgs}
	}
}

func (s *rentScreen) View() string {
	var body string
	switch {
	case s.busy && !s.ready:
		body = mutedStyle.Render("Carregando...")
	case s.ready:
		body = s.users.View(s.focus == 0) + "\n" + s.bikes.View(s.focus == 1) + "\n\n" +
			mutedStyle.Render(countLabel(len(s.bikes.choices), "bicicleta disponível", "bicicletas disponíveis"))
	}
	help := "r recarregar"
	if s.ready {
		help = "tab mover • ←/→ escolher • enter alugar • " + help
	}
	return section(
		titleStyle.Render(s.header),
		body,
		renderMessages(s.msgs),
		helpStyle.Render(help),
	)
}
