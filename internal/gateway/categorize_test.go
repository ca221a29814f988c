package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "http://127.0.0.1:5000/bikes", Err: &net.OpError{
		Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"refused typed", refused, "conexão recusada, verifique se a API está rodando"},
		{"reset typed", fmt.Errorf("read: %w", syscall.ECONNRESET), "conexão encerrada pelo servidor"},
		{"unreachable typed", syscall.ENETUNREACH, "rede inacessível"},
		{"dns typed", &net.DNSError{Err: "no such host", Name: "api.invalid", IsNotFound: true}, "falha na resolução de DNS"},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), "tempo esgotado"},
		{"canceled", context.Canceled, "requisição cancelada"},
		{"refused text", errors.New("dial tcp 127.0.0.1:9999: connect: connection refused"), "conexão recusada, verifique se a API está rodando"},
		{"dns text", errors.New("dial tcp: lookup api.invalid: no such host"), "falha na resolução de DNS"},
		{"tls text", errors.New("x509: certificate signed by unknown authority"), "erro de TLS"},
		{"scheme text", errors.New("unsupported protocol scheme \"ftp\""), "URL inválida"},
		{"eof text", errors.New("unexpected EOF"), "conexão fechada inesperadamente"},
		{"unknown", errors.New("something odd"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorize(tt.err))
		})
	}
}

func TestDescribeTransport(t *testing.T) {
	assert.Equal(t, "erro desconhecido", describeTransport(nil))
	assert.Equal(t, "something odd", describeTransport(errors.New("something odd")))
	assert.Equal(t, "tempo esgotado (i/o timeout)", describeTransport(errors.New("i/o timeout")))
}

func TestFailureError(t *testing.T) {
	assert.Equal(t, "not found: status 404", (&Failure{Kind: KindNotFound, Status: 404}).Error())
	assert.Equal(t, "transport error: boom", (&Failure{Kind: KindTransport, Err: errors.New("boom")}).Error())
	assert.Equal(t, "unsupported verb", (&Failure{Kind: KindUnsupportedVerb}).Error())

	inner := errors.New("inner")
	assert.ErrorIs(t, &Failure{Kind: KindTransport, Err: inner}, inner)
}
