// Package mockapi is an in-memory stand-in for the rental API, serving the
// same routes so the dashboard can be run and tested without the backend.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/idilsaglam/bikerental/internal/store/jsonstore"
)

// Options configure a Server.
type Options struct {
	// DataFile, when set, is loaded at start and rewritten after each change.
	DataFile string
	// Origins allowed by CORS; empty allows any origin.
	Origins []string
	Logger  logr.Logger
	// Now stamps new loans; defaults to time.Now.
	Now func() time.Time
}

// Server holds the backend state behind a gin router.
type Server struct {
	mu     sync.Mutex
	state  Snapshot
	opts   Options
	engine *gin.Engine
}

// New builds a server, loading opts.DataFile when it exists.
func New(opts Options) (*Server, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	s := &Server{opts: opts}
	if opts.DataFile != "" {
		snap, _, err := jsonstore.Load[Snapshot](opts.DataFile)
		if err != nil {
			return nil, fmt.Errorf("load data file: %w", err)
		}
		s.state = snap
	}
	s.state.normalize()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	r.Use(cors.New(corsConfig(opts.Origins)))
	s.routes(r)
	s.engine = r
	return s, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/bikes", s.listBikes)
	r.POST("/bikes", s.createBike)
	r.PUT("/bikes/:id", s.updateBike)
	r.DELETE("/bikes/:id", s.deleteBike)

	r.GET("/usuarios", s.listUsers)
	r.POST("/usuarios", s.createUser)
	r.PUT("/usuarios/:id", s.updateUser)
	r.DELETE("/usuarios/:id", s.deleteUser)

	r.GET("/emprestimos", s.listLoans)
	r.POST("/emprestimos/usuarios/:userId/bikes/:bikeId", s.createLoan)
	r.DELETE("/emprestimos/:id", s.returnLoan)
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Snapshot returns a copy of the current state.
func (s *Server) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.opts.Logger.V(1).Info("mockapi request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}

// persist saves the state; callers hold s.mu.
func (s *Server) persist() error {
	if s.opts.DataFile == "" {
		return nil
	}
	return jsonstore.Save(s.opts.DataFile, s.state)
}

// commit persists after a mutation and writes body. If saving fails the
// state goes back to prev and the client gets a 500.
func (s *Server) commit(c *gin.Context, prev Snapshot, body any) {
	if err := s.persist(); err != nil {
		s.state = prev
		s.opts.Logger.Error(err, "persist state")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao salvar dados"})
		return
	}
	c.JSON(http.StatusOK, body)
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " não encontrado(a)"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func newID() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }
