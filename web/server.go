// Package web serves the dashboard over HTTP. Each browser gets its own
// session; checkbox and sidebar changes are posted as events and answered
// with a datastar patch of the dashboard element.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"shopping-dashboard/dashboard"
	"shopping-dashboard/utils"
)

const (
	cookieName = "shopping-dashboard"
	cookieKey  = "sid"
)

// Options configures the server.
type Options struct {
	Addr          string
	SessionSecret string
	// SessionTTL is how long an idle session is kept. Zero means 24h.
	SessionTTL time.Duration
	Logger     *utils.Logger
}

// Server is the dashboard web server.
type Server struct {
	dash     *dashboard.Dashboard
	cookies  *sessions.CookieStore
	sessions *registry
	page     *template.Template
	addr     string
	ttl      time.Duration
	logger   *utils.Logger
}

// NewServer creates a server for dash.
func NewServer(dash *dashboard.Dashboard, opts Options) (*Server, error) {
	page, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	cookies := sessions.NewCookieStore([]byte(opts.SessionSecret))
	cookies.MaxAge(int(ttl / time.Second))
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		dash:     dash,
		cookies:  cookies,
		sessions: newRegistry(dash),
		page:     page,
		addr:     opts.Addr,
		ttl:      ttl,
		logger:   opts.Logger.With("web"),
	}, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/frame", s.handleFrame)
	r.Get("/charts/{kind}", s.handleChartPNG)

	r.Route("/events", func(r chi.Router) {
		r.Post("/reconcile/{dimension}", s.handleEvent(reconcileEvent))
		r.Post("/clear/{dimension}", s.handleEvent(clearEvent))
		r.Post("/sidebar", s.handleEvent(sidebarEvent))
		r.Post("/reset", s.handleEvent(resetEvent))
	})
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Serving dashboard on %s", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		ticker := time.NewTicker(s.ttl / 4)
		defer ticker.Stop()
		for {
			select {
			case <-egctx.Done():
				return nil
			case <-ticker.C:
				if n := s.sessions.sweep(s.ttl); n > 0 {
					s.logger.Debug("Expired %d idle sessions", n)
				}
			}
		}
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutting down dashboard server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// session returns the caller's session, creating one and setting the cookie
// when the request carries none or names an expired one. It must run before
// anything is written to w.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*entry, error) {
	// A cookie that fails to decode yields a fresh session, which is what we want.
	cs, _ := s.cookies.Get(r, cookieName)
	if id, ok := cs.Values[cookieKey].(string); ok {
		if e, ok := s.sessions.get(id); ok {
			return e, nil
		}
	}

	id, e := s.sessions.create()
	cs.Values[cookieKey] = id
	if err := cs.Save(r, w); err != nil {
		return nil, fmt.Errorf("web: save session: %w", err)
	}
	s.logger.Debug("Started session %s", id)
	return e, nil
}
