package ui

import "github.com/idilsaglam/bikerental/internal/gateway"

// Reporter prints gateway and controller messages as they arrive.
type Reporter struct{}

func (Reporter) Report(m gateway.Message) {
	switch m.Level {
	case gateway.LevelSuccess:
		OK(m.Text)
	case gateway.LevelWarning:
		Warn(m.Text)
	case gateway.LevelError:
		Fail(m.Text)
	default:
		Info(m.Text)
	}
}
