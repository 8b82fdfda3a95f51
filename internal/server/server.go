// Package server exposes the seat plan pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness and build version
//	POST /v1/seat-plan      render a seat plan (?format=pdf|svg|json|txt)
//	POST /v1/duty-roster    render a duty roster (?format=...)
//	POST /v1/preview        JSON preview of either kind (?kind=...)
//
// Request bodies are exam documents in TOML or JSON, the same shape the CLI
// reads from disk. Query parameters page_size, margin and refresh override
// the server defaults for one request.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/compose"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/exam"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is empty.
	DefaultAddr = ":8080"

	// DefaultRequestTimeout bounds a single request.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps the size of an exam document.
	DefaultMaxBodyBytes = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Config holds server settings.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	// Defaults are applied to every request before query overrides.
	Defaults pipeline.Options
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Server serves the pipeline over HTTP.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around runner. A nil logger uses log.Default().
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg.withDefaults(), runner: runner, logger: logger}
}

// Router returns the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/seat-plan", s.handleRender(compose.KindSeatPlan))
		r.Post("/duty-roster", s.handleRender(compose.KindDutyRoster))
		r.Post("/preview", s.handlePreview)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// observe reports each request to the registered HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Short(),
	})
}

func (s *Server) handleRender(kind compose.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := s.readInput(w, r)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = pipeline.FormatPDF
		}
		opts, err := s.options(r, kind, format)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}

		res, err := s.runner.Execute(r.Context(), f, opts)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		if !res.Ready() {
			writeNotReady(w, res.Compose)
			return
		}

		format = opts.Formats[0]
		w.Header().Set("Content-Type", contentType(format))
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename(format)+`"`)
		w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
		w.Header().Set("X-Page-Count", strconv.Itoa(res.Stats.Pages))
		if n := len(res.Stats.Overflows); n > 0 {
			w.Header().Set("X-Overflow", strconv.Itoa(n))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	f, err := s.readInput(w, r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	kind := pipeline.DefaultKind
	if v := r.URL.Query().Get("kind"); v != "" {
		if kind, err = compose.ParseKind(v); err != nil {
			s.writeErr(w, r, err)
			return
		}
	}
	opts, err := s.options(r, kind, pipeline.FormatJSON)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	data, hit, err := s.runner.Preview(r.Context(), f, opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(pipeline.FormatJSON))
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Request Helpers
// =============================================================================

func (s *Server) readInput(w http.ResponseWriter, r *http.Request) (*exam.File, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return pipeline.ParseInputBytes(data)
}

// options merges the server defaults with per-request query overrides.
func (s *Server) options(r *http.Request, kind compose.Kind, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	d := s.cfg.Defaults
	opts := pipeline.Options{
		Kind:     kind,
		Formats:  []string{format},
		PageSize: d.PageSize,
		Margin:   d.Margin,
		Source:   d.Source,
		Date:     d.Date,
	}

	if v := q.Get("page_size"); v != "" {
		opts.PageSize = v
	}
	if v := q.Get("margin"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "margin %q is not a number", v)
		}
		opts.Margin = m
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "refresh %q is not a boolean", v)
		}
		opts.Refresh = refresh
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	// Validating here resolves aliases such as "text" before the handler
	// reads the format back.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsInvalid(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
		return
	}
	s.logger.Error("request failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   string(errors.ErrCodeInternal),
		Message: "internal error",
	})
}

func writeNotReady(w http.ResponseWriter, res compose.Result) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:  "NOT_READY",
		Reason: res.Reason,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
