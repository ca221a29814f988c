package gateway

import "fmt"

// Level grades a user-facing message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Message is one line shown to the operator.
type Message struct {
	Level Level
	Text  string
}

// Reporter is the active screen. The gateway and the controllers write
// outcomes to it instead of returning them up the stack.
type Reporter interface {
	Report(Message)
}

// Messages collects reports in order. Its zero value is ready to use.
type Messages []Message

func (m *Messages) Report(msg Message) { *m = append(*m, msg) }

// Last returns the most recent message, if any.
func (m Messages) Last() (Message, bool) {
	if len(m) == 0 {
		return Message{}, false
	}
	return m[len(m)-1], true
}

// Has reports whether any message has level l.
func (m Messages) Has(l Level) bool {
	for _, msg := range m {
		if msg.Level == l {
			return true
		}
	}
	return false
}

// Discard drops every report.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Message) {}

func Success(r Reporter, text string) { r.Report(Message{Level: LevelSuccess, Text: text}) }
func Warn(r Reporter, text string)    { r.Report(Message{Level: LevelWarning, Text: text}) }
func Error(r Reporter, text string)   { r.Report(Message{Level: LevelError, Text: text}) }
func Info(r Reporter, text string)    { r.Report(Message{Level: LevelInfo, Text: text}) }
