// Package tui is the terminal dashboard: a menu of screens on the left and
// the open screen on the right.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
)

const (
	appTitle  = "Sistema de Aluguel de Bicicletas"
	menuTitle = "Escolha a Função"
	menuWidth = 26
)

// screen is one open dashboard screen.
type screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (screen, tea.Cmd)
	View() string
}

// owned is a result message of an async call, tagged with the screen that
// issued it so a result arriving after the screen closed is dropped.
type owned interface {
	owner() int
}

// env is what every screen needs to talk to the API.
type env struct {
	ctx    context.Context
	ctl    *dashboard.Controller
	seq    int
	width  int
	height int
}

// doneMsg ends a mutation; ok triggers a reload.
type doneMsg struct {
	seq  int
	ok   bool
	msgs gateway.Messages
}

func (m doneMsg) owner() int { return m.seq }

// menuItem adapts a Screen to bubbles/list.
type menuItem struct{ screen dashboard.Screen }

func (i menuItem) Title() string       { return i.screen.Title() }
func (i menuItem) Description() string { return "" }
func (i menuItem) FilterValue() string { return i.screen.Title() }

// single-line delegate, the open screen stays marked
type itemDelegate struct{ open *int }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(menuItem)
	text := it.Title()
	if d.open != nil && *d.open == index {
		text = accentStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+text)
}

// App is the root bubbletea model.
type App struct {
	env    env
	menu   list.Model
	open   *int
	active screen
	log    logr.Logger
}

// Options tune the dashboard.
type Options struct {
	Theme  string
	Logger logr.Logger
}

func New(ctx context.Context, ctl *dashboard.Controller, opts Options) App {
	applyTheme(opts.Theme)
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	screens := dashboard.Screens()
	items := make([]list.Item, len(screens))
	for i, s := range screens {
		items[i] = menuItem{screen: s}
	}
	open := -1
	l := list.New(items, itemDelegate{open: &open}, menuWidth, len(items)+4)
	l.Title = menuTitle
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return App{
		env:  env{ctx: ctx, ctl: ctl, width: 80, height: 24},
		menu: l,
		open: &open,
		log:  opts.Logger,
	}
}

// Run shows the dashboard until the operator quits or ctx ends.
func Run(ctx context.Context, ctl *dashboard.Controller, opts Options) error {
	p := tea.NewProgram(New(ctx, ctl, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.env.width, m.env.height = msg.Width, msg.Height
		m.menu.SetSize(menuWidth, msg.Height-4)
		if m.active != nil {
			var cmd tea.Cmd
			m.active, cmd = m.active.Update(m.screenSize())
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.active == nil {
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			case "enter":
				if it, ok := m.menu.SelectedItem().(menuItem); ok {
					return m.openScreen(it.screen)
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}
		if msg.String() == "esc" {
			m.active = nil
			*m.open = -1
			return m, nil
		}

	case owned:
		if m.active == nil || msg.owner() != m.env.seq {
			m.log.V(1).Info("dropping stale result", "type", fmt.Sprintf("%T", msg))
			return m, nil
		}
	}

	if m.active == nil {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

func (m App) openScreen(s dashboard.Screen) (tea.Model, tea.Cmd) {
	m.env.seq++
	*m.open = m.menu.Index()
	m.active = m.newScreen(s)
	m.log.V(1).Info("open screen", "screen", s.String(), "seq", m.env.seq)
	return m, m.active.Init()
}

// newScreen builds the model behind each menu entry.
func (m App) newScreen(s dashboard.Screen) screen {
	e := m.env
	e.width, e.height = m.screenDims()
	switch s {
	case dashboard.ScreenListBikes:
		return newListScreen(e, dashboard.ResourceBikes, s.Header())
	case dashboard.ScreenManageBikes:
		return newManageScreen(e, dashboard.BikeEntity, s.Header())
	case dashboard.ScreenListUsers:
		return newListScreen(e, dashboard.ResourceUsers, s.Header())
	case dashboard.ScreenManageUsers:
		return newManageScreen(e, dashboard.UserEntity, s.Header())
	case dashboard.ScreenRent:
		return newRentScreen(e, s.Header())
	case dashboard.ScreenReturn:
		return newReturnScreen(e, s.Header())
	case dashboard.ScreenLoans:
		return newListScreen(e, dashboard.ResourceLoans, s.Header())
	}
	panic(fmt.Sprintf("no screen for %v", s))
}

// screenDims is the room left for the open screen inside its panel.
func (m App) screenDims() (int, int) {
	w := m.env.width - menuWidth - 8
	h := m.env.height - 4
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	return w, h
}

func (m App) screenSize() tea.WindowSizeMsg {
	w, h := m.screenDims()
	return tea.WindowSizeMsg{Width: w, Height: h}
}

func (m App) View() string {
	w, _ := m.screenDims()
	left := panelString(m.menu.View(), m.active == nil, menuWidth)
	body := mutedStyle.Render("Selecione uma função no menu e pressione enter.")
	if m.active != nil {
		body = m.active.View()
	}
	right := panelString(body, m.active != nil, w)

	help := "↑/↓ navegar • enter abrir • q sair"
	if m.active != nil {
		help = "esc menu • ctrl+c sair"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(appTitle),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		helpStyle.Render(help),
	)
}
