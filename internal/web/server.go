// Package web serves the lesson site.
//
// Every request belongs to an anonymous visitor identified by a session
// cookie. The visitor's theme is owned by a theme.Manager built per request:
// its storage is the shared store scoped to the session, its OS signal is the
// Sec-CH-Prefers-Color-Scheme client hint, and its presenter decides whether
// the page is rendered with the "dark" class. Live OS changes reach the
// server from the page script through POST /api/theme/system.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pandalearn/pandalearn/pkg/content"
	"github.com/pandalearn/pandalearn/pkg/session"
	"github.com/pandalearn/pandalearn/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Store holds every visitor's preferences. Nil keeps themes per request.
	Store store.Store

	// Content serves the lessons. Required.
	Content content.Repository

	Logger *log.Logger

	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// SessionTTL is the lifetime of the visitor cookie and stored preferences.
	SessionTTL time.Duration

	// SecureCookies marks the visitor cookie Secure.
	SecureCookies bool

	// PinUserChoice stops OS changes from overriding an explicit choice.
	PinUserChoice bool
}

// Server is the lesson site.
type Server struct {
	store         store.Store
	content       content.Repository
	logger        *log.Logger
	pages         *pageSet
	addr          string
	readTimeout   time.Duration
	writeTimeout  time.Duration
	shutdown      time.Duration
	sessionTTL    time.Duration
	secureCookies bool
	pin           bool
}

// New creates a server. Templates are parsed eagerly so broken templates
// fail at startup.
func New(opts Options) (*Server, error) {
	if opts.Content == nil {
		return nil, errors.New("web: content repository is required")
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:         opts.Store,
		content:       opts.Content,
		logger:        opts.Logger,
		pages:         pages,
		addr:          opts.Addr,
		readTimeout:   opts.ReadTimeout,
		writeTimeout:  opts.WriteTimeout,
		shutdown:      opts.ShutdownTimeout,
		sessionTTL:    opts.SessionTTL,
		secureCookies: opts.SecureCookies,
		pin:           opts.PinUserChoice,
	}
	if s.store == nil {
		s.store = store.NewNullStore()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.addr == "" {
		s.addr = ":8080"
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = session.DefaultTTL
	}
	if s.shutdown <= 0 {
		s.shutdown = 10 * time.Second
	}
	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(clientHintHeaders)

	r.Handle("/static/*", staticHandler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.withVisitor)
		s.mountPages(r)

		r.Post("/theme/toggle", s.handleToggleForm)

		r.Route("/api/theme", func(r chi.Router) {
			r.Get("/", s.handleGetTheme)
			r.Put("/", s.handleSetTheme)
			r.Delete("/", s.handleResetTheme)
			r.Post("/toggle", s.handleToggleTheme)
			r.Post("/system", s.handleSystemTheme)
		})
	})

	r.NotFound(s.withVisitor(http.HandlerFunc(s.renderNotFound)).ServeHTTP)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.shutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
