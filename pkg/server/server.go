// Package server exposes sheetplot sessions over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ukaji3/sheetplot-go/pkg/logging"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot"
)

const shutdownTimeout = 5 * time.Second

// Config configures the server.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	SessionTTL     time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// Session holds the options new sessions start with.
	Session sheetplot.Options
}

// Server serves the session API.
type Server struct {
	cfg      Config
	log      *logging.Logger
	sessions *registry
	mux      *http.ServeMux
}

// New creates a server. A nil logger discards output.
func New(cfg Config, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = sheetplot.DefaultMaxBytes
	}
	cfg.Session.MaxBytes = cfg.MaxUploadBytes

	s := &Server{
		cfg:      cfg,
		log:      log,
		sessions: newRegistry(cfg.Session, cfg.SessionTTL, log),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST /api/sessions", s.handleCreate)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDelete)
	s.mux.HandleFunc("PUT /api/sessions/{id}/table", s.withSession(s.handleUpload))
	s.mux.HandleFunc("GET /api/sessions/{id}/columns", s.withSession(s.handleColumns))
	s.mux.HandleFunc("GET /api/sessions/{id}/presets", s.withSession(s.handlePresets))
	s.mux.HandleFunc("GET /api/sessions/{id}/defaults/{kind}", s.withSession(s.handleDefaults))
	s.mux.HandleFunc("POST /api/sessions/{id}/limits", s.withSession(s.handleLimits))
	s.mux.HandleFunc("POST /api/sessions/{id}/chart", s.withSession(s.handleChart))
	s.mux.HandleFunc("POST /api/sessions/{id}/render", s.withSession(s.handleRender))
	s.mux.HandleFunc("POST /api/sessions/{id}/html", s.withSession(s.handleHTML))
	s.mux.HandleFunc("GET /api/sessions/{id}/preview", s.withSession(s.handlePreview))
}

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.log, s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(log *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
