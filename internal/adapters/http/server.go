// Package httpserver is the local HTTP view layer: a JSON API over the
// profile, session and view operations plus a websocket session event stream.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/adapters/http/mid"
	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/metrics"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/OliveiraNt/kafkalens/internal/views"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server provides the HTTP API for kafkalens.
type Server struct {
	profiles  *application.ProfileService
	tester    *application.ConnectionTester
	sessions  *application.SessionManager
	navigator *views.Navigator
	state     domain.KVStore
	events    *eventHub
	unsub     func()
}

// New creates a new HTTP server instance and subscribes it to session events.
func New(
	profiles *application.ProfileService,
	tester *application.ConnectionTester,
	sessions *application.SessionManager,
	navigator *views.Navigator,
	state domain.KVStore,
) *Server {
	s := &Server{
		profiles:  profiles,
		tester:    tester,
		sessions:  sessions,
		navigator: navigator,
		state:     state,
		events:    newEventHub(),
	}
	s.unsub = sessions.OnChange(s.events.publish)
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(mid.I18n)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			dur := time.Since(start)
			utils.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", dur.String(),
			)
		})
	})

	r.Get("/api/profiles", s.apiListProfiles)
	r.Post("/api/profiles/test", s.apiTestConnection)
	r.Get("/api/profiles/{profileName}", s.apiGetProfile)
	r.Put("/api/profiles/{profileName}", s.apiSaveProfile)
	r.Delete("/api/profiles/{profileName}", s.apiDeleteProfile)

	r.Get("/api/session", s.apiSessionStatus)
	r.Delete("/api/session", s.apiTeardownSession)
	r.Post("/api/session/activate/{profileName}", s.apiActivateSession)
	r.Get("/api/session/ws", s.wsSessionEvents)

	r.Get("/api/views/{slot}", s.apiOpenView)
	r.Get("/api/settings", s.apiSettings)

	r.Handle("/metrics", metrics.Handler())

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("HTTP server listening", "addr", addr)
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

	utils.Logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.events.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close unsubscribes from session events.
func (s *Server) Close() {
	if s.unsub != nil {
		s.unsub()
	}
	s.events.closeAll()
}
