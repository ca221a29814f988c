package dashboard

import "fmt"

// Screen is one entry of the dashboard menu.
type Screen int

const (
	ScreenListBikes Screen = iota
	ScreenManageBikes
	ScreenListUsers
	ScreenManageUsers
	ScreenRent
	ScreenReturn
	ScreenLoans
)

// Screens returns every screen in menu order.
func Screens() []Screen {
	return []Screen{
		ScreenListBikes,
		ScreenManageBikes,
		ScreenListUsers,
		ScreenManageUsers,
		ScreenRent,
		ScreenReturn,
		ScreenLoans,
	}
}

// Title is the menu label.
func (s Screen) Title() string {
	switch s {
	case ScreenListBikes:
		return "Visualizar Bicicletas"
	case ScreenManageBikes:
		return "Gerenciar Bicicletas"
	case ScreenListUsers:
		return "Visualizar Usuários"
	case ScreenManageUsers:
		return "Gerenciar Usuários"
	case ScreenRent:
		return "Alugar Bicicleta"
	case ScreenReturn:
		return "Devolver Bicicleta"
	case ScreenLoans:
		return "Ver Empréstimos"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Header is the heading shown on top of the screen.
func (s Screen) Header() string {
	switch s {
	case ScreenListBikes:
		return "Bicicletas Disponíveis"
	case ScreenManageBikes:
		return "Gerenciar Bicicletas"
	case ScreenListUsers:
		return "Lista de Usuários"
	case ScreenManageUsers:
		return "Gerenciar Usuários"
	case ScreenRent:
		return "Alugar uma Bicicleta"
	case ScreenReturn:
		return "Devolver uma Bicicleta"
	case ScreenLoans:
		return "Lista de Empréstimos Ativos"
	}
	return s.Title()
}

func (s Screen) String() string { return s.Title() }
