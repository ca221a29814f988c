package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/idilsaglam/bikerental/internal/config"
)

// Verb is an HTTP method the API accepts.
type Verb int

const (
	VerbGet Verb = iota + 1
	VerbPost
	VerbPut
	VerbDelete
)

// Method returns the wire name, false for anything outside the enum.
func (v Verb) Method() (string, bool) {
	switch v {
	case VerbGet:
		return http.MethodGet, true
	case VerbPost:
		return http.MethodPost, true
	case VerbPut:
		return http.MethodPut, true
	case VerbDelete:
		return http.MethodDelete, true
	}
	return "", false
}

func (v Verb) String() string {
	if m, ok := v.Method(); ok {
		return m
	}
	return fmt.Sprintf("verb(%d)", int(v))
}

// hasBody reports whether the verb carries a JSON payload; the others send
// Query as the query string.
func (v Verb) hasBody() bool { return v == VerbPost || v == VerbPut }

// Request is one call against the API. Path is relative to the base URL.
type Request struct {
	Path  string
	Verb  Verb
	Query url.Values
	Body  any
}

// Gateway is the only component talking to the rental API.
type Gateway struct {
	base   *url.URL
	client *http.Client
	token  string
	log    logr.Logger
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithLogger sets the debug logger.
func WithLogger(l logr.Logger) Option { return func(g *Gateway) { g.log = l } }

// WithToken sends "Authorization: Bearer <token>" on every call.
func WithToken(token string) Option { return func(g *Gateway) { g.token = token } }

// New builds a gateway for cfg.BaseURL.
func New(cfg config.API, opts ...Option) (*Gateway, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	g := &Gateway{
		base:   base,
		client: newHTTPClient(cfg),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// newHTTPClient keeps the status code untouched whatever the retry count:
// the passthrough handler hands back the last response instead of an error.
func newHTTPClient(cfg config.API) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Retries
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient.Timeout = cfg.Timeout
	return rc.StandardClient()
}

// URL returns the absolute URL for a resource path.
func (g *Gateway) URL(path string) *url.URL {
	return g.base.JoinPath(strings.TrimLeft(path, "/"))
}

// Do performs req. On success it returns the JSON body of a 200 response.
// Any failure is reported to rep and returned as a *Failure.
func (g *Gateway) Do(ctx context.Context, rep Reporter, req Request) (json.RawMessage, error) {
	method, ok := req.Verb.Method()
	if !ok {
		return g.fail(rep, req, &Failure{Kind: KindUnsupportedVerb, Err: fmt.Errorf("verb %s", req.Verb)})
	}

	u := g.URL(req.Path)
	var body io.Reader
	if req.Verb.hasBody() {
		if req.Body != nil {
			b, err := json.Marshal(req.Body)
			if err != nil {
				return g.fail(rep, req, &Failure{Kind: KindTransport, Err: fmt.Errorf("encode body: %w", err)})
			}
			body = bytes.NewReader(b)
		}
	} else if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return g.fail(rep, req, &Failure{Kind: KindTransport, Err: err})
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.token)
	}

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return g.fail(rep, req, &Failure{Kind: KindTransport, Err: err})
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return g.fail(rep, req, &Failure{Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)})
	}
	g.log.V(1).Info("api call", "method", method, "url", u.String(), "status", resp.StatusCode,
		"duration", time.Since(start).String(), "bytes", len(b))

	switch resp.StatusCode {
	case http.StatusOK:
		if !json.Valid(b) {
			return g.fail(rep, req, &Failure{Kind: KindMalformed, Status: resp.StatusCode, Body: string(b),
				Err: fmt.Errorf("body is not JSON")})
		}
		return json.RawMessage(b), nil
	case http.StatusNotFound:
		return g.fail(rep, req, &Failure{Kind: KindNotFound, Status: resp.StatusCode, Body: string(b)})
	case http.StatusInternalServerError:
		return g.fail(rep, req, &Failure{Kind: KindServer, Status: resp.StatusCode, Body: string(b)})
	default:
		return g.fail(rep, req, &Failure{Kind: KindHTTP, Status: resp.StatusCode, Body: string(b)})
	}
}

func (g *Gateway) fail(rep Reporter, req Request, f *Failure) (json.RawMessage, error) {
	g.log.Error(f, "api call failed", "verb", req.Verb.String(), "path", req.Path, "kind", f.Kind.String())
	rep.Report(f.Message())
	return nil, f
}

func (g *Gateway) Get(ctx context.Context, rep Reporter, path string) (json.RawMessage, error) {
	return g.Do(ctx, rep, Request{Path: path, Verb: VerbGet})
}

func (g *Gateway) Post(ctx context.Context, rep Reporter, path string, body any) (json.RawMessage, error) {
	return g.Do(ctx, rep, Request{Path: path, Verb: VerbPost, Body: body})
}

func (g *Gateway) Put(ctx context.Context, rep Reporter, path string, body any) (json.RawMessage, error) {
	return g.Do(ctx, rep, Request{Path: path, Verb: VerbPut, Body: body})
}

func (g *Gateway) Delete(ctx context.Context, rep Reporter, path string) (json.RawMessage, error) {
	return g.Do(ctx, rep, Request{Path: path, Verb: VerbDelete})
}
