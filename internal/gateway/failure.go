package gateway

import (
	"fmt"
	"strings"
)

// Kind classifies why a call failed.
type Kind int

const (
	KindUnsupportedVerb Kind = iota + 1
	KindNotFound
	KindServer
	KindHTTP
	KindTransport
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedVerb:
		return "unsupported verb"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	case KindHTTP:
		return "http error"
	case KindTransport:
		return "transport error"
	case KindMalformed:
		return "malformed response"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is the only error the gateway returns. By the time a caller sees
// it, Message() has already been reported.
type Failure struct {
	Kind   Kind
	Status int
	Body   string
	Err    error
}

func (f *Failure) Error() string {
	switch {
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	case f.Status != 0:
		return fmt.Sprintf("%s: status %d", f.Kind, f.Status)
	}
	return f.Kind.String()
}

func (f *Failure) Unwrap() error { return f.Err }

// Message is what the operator sees for this failure.
func (f *Failure) Message() Message {
	switch f.Kind {
	case KindUnsupportedVerb:
		return Message{Level: LevelError, Text: "Método HTTP não suportado."}
	case KindNotFound:
		return Message{Level: LevelWarning, Text: "Recurso não encontrado."}
	case KindServer:
		return Message{Level: LevelError, Text: "Erro interno do servidor."}
	case KindHTTP:
		return Message{Level: LevelError, Text: fmt.Sprintf("Erro: %d - %s", f.Status, strings.TrimSpace(f.Body))}
	case KindTransport:
		return Message{Level: LevelError, Text: "Erro de conexão: " + describeTransport(f.Err)}
	case KindMalformed:
		return Message{Level: LevelError, Text: fmt.Sprintf("Resposta inválida do servidor: %v", f.Err)}
	}
	return Message{Level: LevelError, Text: f.Error()}
}
