package gateway

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"strings"
	"syscall"
)

// describeTransport turns a transport error into "<category> (<cause>)".
// Unknown errors are shown as they are.
func describeTransport(err error) string {
	if err == nil {
		return "erro desconhecido"
	}
	cause := err.Error()
	if c := categorize(err); c != "" {
		return c + " (" + cause + ")"
	}
	return cause
}

func categorize(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "requisição cancelada"
	case errors.Is(err, context.DeadlineExceeded):
		return "tempo esgotado"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "conexão recusada, verifique se a API está rodando"
	case errors.Is(err, syscall.ECONNRESET):
		return "conexão encerrada pelo servidor"
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return "rede inacessível"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "falha na resolução de DNS"
	}
	var unknownCA x509.UnknownAuthorityError
	if errors.As(err, &unknownCA) {
		return "certificado TLS não confiável"
	}
	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return "certificado TLS não corresponde ao host"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "tempo esgotado"
	}
	return categorizeText(err.Error())
}

// categorizeText is the fallback for errors that lost their type on the way,
// e.g. through the retrying client.
func categorizeText(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "context canceled"):
		return "requisição cancelada"
	case strings.Contains(s, "deadline exceeded"), strings.Contains(s, "timeout"), strings.Contains(s, "timed out"):
		return "tempo esgotado"
	case strings.Contains(s, "connection refused"):
		return "conexão recusada, verifique se a API está rodando"
	case strings.Contains(s, "no such host"), strings.Contains(s, "dial tcp: lookup"):
		return "falha na resolução de DNS"
	case strings.Contains(s, "connection reset"):
		return "conexão encerrada pelo servidor"
	case strings.Contains(s, "network is unreachable"), strings.Contains(s, "no route to host"):
		return "rede inacessível"
	case strings.Contains(s, "x509"), strings.Contains(s, "tls"), strings.Contains(s, "certificate"):
		return "erro de TLS"
	case strings.Contains(s, "unsupported protocol scheme"), strings.Contains(s, "invalid url"):
		return "URL inválida"
	case strings.Contains(s, "eof"):
		return "conexão fechada inesperadamente"
	}
	return ""
}
