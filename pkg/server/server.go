package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/pipeline"
	"github.com/matzehuels/brainwave/pkg/session"
)

// Default server limits.
const (
	DefaultMaxBodyBytes    = 10 << 20
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRequestTimeout  = 60 * time.Second
)

// Options configures a Server.
type Options struct {
	Logger *log.Logger

	// Runner renders scenes and exports. Nil uses an uncached runner.
	Runner *pipeline.Runner

	// Render holds the defaults for scene and export requests.
	Render pipeline.Options

	// Screen is the viewport assumed when a request does not send its size.
	Screen geom.Rect

	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Runner == nil {
		o.Runner = pipeline.NewRunner(nil, nil, o.Logger)
	}
	if o.Screen.Empty() {
		o.Screen = geom.Rect{MaxX: pipeline.DefaultViewportWidth, MaxY: pipeline.DefaultViewportHeight}
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	return o
}

// Server serves the session API.
type Server struct {
	sessions *session.Manager
	opts     Options
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server with all routes configured.
func New(sessions *session.Manager, opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		sessions: sessions,
		opts:     opts,
		logger:   opts.Logger,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler { return s.router }

// ServeHTTP implements http.Handler by delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleCreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			r.Get("/document", s.handleGetDocument)
			r.Put("/document", s.handleReplaceDocument)
			r.Get("/scene", s.handleScene)
			r.Get("/export.{format}", s.handleExport)
			r.Get("/search", s.handleSearch)

			r.Post("/nodes", s.handleAddNode)
			r.Route("/nodes/{nodeID}", func(r chi.Router) {
				r.Get("/", s.handleGetNode)
				r.Patch("/", s.handleUpdateNode)
				r.Delete("/", s.handleDeleteNode)
				r.Post("/collapse", s.handleToggleCollapsed)
				r.Post("/lock", s.handleToggleLocked)
				r.Post("/move", s.handleMoveNode)
				r.Post("/drag", s.handleDragNode)
				r.Post("/parent", s.handleReparent)
				r.Post("/center", s.handleCenterOn)
				r.Post("/select", s.handleSelect)
			})

			r.Post("/links", s.handleAddLink)
			r.Delete("/links/{index}", s.handleRemoveLink)

			r.Post("/layout", s.handleLayout)
			r.Post("/zoom", s.handleZoom)
			r.Post("/pan", s.handlePan)
			r.Post("/fit", s.handleFit)
			r.Post("/reset", s.handleResetView)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and flushes pending document writes.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.opts.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if flushErr := s.sessions.Flush(shutdownCtx); flushErr != nil {
		s.logger.Error("flush pending writes", "error", flushErr)
		if err == nil {
			err = flushErr
		}
	}
	return err
}
