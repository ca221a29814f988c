package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/bikerental/internal/gateway"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	borderColor = lipgloss.Color("8")
	focusColor  = lipgloss.Color("12")
)

// applyTheme follows the configured theme name: "neon" recolors the
// accents, "mono" drops colors altogether.
func applyTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		focusColor = lipgloss.Color("13")
	case "mono":
		plain := lipgloss.NewStyle()
		successStyle, warnStyle, accentStyle = plain, plain, plain
		errorStyle = plain.Bold(true)
		borderColor, focusColor = lipgloss.Color(""), lipgloss.Color("")
	}
}

func panelString(inner string, focused bool, width int) string {
	c := borderColor
	if focused {
		c = focusColor
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)
	if width > 0 {
		border = border.Width(width)
	}
	return border.Render(inner)
}

// renderMessages shows the outcome of the last operation, styled by level.
func renderMessages(msgs gateway.Messages) string {
	if len(msgs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		switch m.Level {
		case gateway.LevelSuccess:
			lines = append(lines, successStyle.Render("✔ "+m.Text))
		case gateway.LevelWarning:
			lines = append(lines, warnStyle.Render("⚠ "+m.Text))
		case gateway.LevelError:
			lines = append(lines, errorStyle.Render("✖ "+m.Text))
		default:
			lines = append(lines, mutedStyle.Render("• "+m.Text))
		}
	}
	return strings.Join(lines, "\n")
}

// section joins non-empty blocks with a blank line between them.
func section(blocks ...string) string {
	var out []string
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}
