// Package server serves the blog over HTTP, reading posts from disk on
// every request.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"develog/internal/content"
	"develog/internal/logging"
	"develog/internal/site"
)

// PostReader loads posts on demand.
type PostReader interface {
	site.PostSource
	PostBySlug(ctx context.Context, slug string) (*content.Post, error)
}

// Server is the develog HTTP server.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	posts    PostReader
	renderer *site.Renderer
	css      site.Stylesheet
	metrics  http.Handler
	logger   logging.Logger
}

// Option customises a Server.
type Option func(*Server)

func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStylesheet serves the chroma stylesheet at site.StylesheetPath when
// css is in class mode.
func WithStylesheet(css site.Stylesheet) Option {
	return func(s *Server) {
		s.css = css
	}
}

// New builds a server listening on addr.
func New(addr string, posts PostReader, renderer *site.Renderer, opts ...Option) *Server {
	s := &Server{
		Addr:     addr,
		router:   chi.NewRouter(),
		posts:    posts,
		renderer: renderer,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Get("/", s.handleHome)
	s.router.Get("/posts/*", s.handlePost)
	s.router.Get("/sitemap.xml", s.handleSitemap)
	if s.css != nil && s.css.CSSClasses() {
		s.router.Get(site.StylesheetPath, s.handleStylesheet)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/posts", s.handleListPosts)
		r.Get("/posts/*", s.handleGetPost)
		r.Get("/tree", s.handleTree)
	})

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}

	s.router.NotFound(s.handleNotFound)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			logging.FieldPath, r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			logging.FieldDuration, time.Since(start).Milliseconds(),
		)
	})
}
