package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphnest/pkg/buildinfo"
	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/errors"
	"github.com/matzehuels/graphnest/pkg/observability"
	"github.com/matzehuels/graphnest/pkg/pipeline"
)

const (
	defaultAddr     = "localhost:8080"
	maxBodyBytes    = 10 << 20
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command, which exposes layout over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		breakCycles bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  POST /v1/layout    lay out a JSON document and return it
  POST /v1/validate  check a JSON document
  GET  /healthz      liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(breakCycles)
			if err != nil {
				return err
			}
			return c.runServer(cmd.Context(), addr, newRouter(runner, c.Logger))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&breakCycles, "break-cycles", false, "remove cyclic edges before layout")
	return cmd
}

// runServer serves h on addr until ctx is cancelled.
func (c *CLI) runServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	printInfo("Listening on %s", StyleValue.Render("http://"+addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// =============================================================================
// Router
// =============================================================================

type server struct {
	runner *pipeline.Runner
}

// newRouter builds the HTTP routes around runner.
func newRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	s := &server{runner: runner}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/validate", s.handleValidate)
	})
	return r
}

// requestLogger attaches a request-scoped logger and reports each request
// through the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = withLogger(ctx, logger.With("request_id", middleware.GetReqID(ctx)))

			hooks := observability.HTTP()
			hooks.OnRequest(ctx, r.Method, r.URL.Path)
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(ctx, r.Method, r.URL.Path, status, time.Since(start))
		})
	}
}

// =============================================================================
// Handlers
// =============================================================================

type layoutResponse struct {
	Document document.Document `json:"document"`
	Warnings []string          `json:"warnings"`
	Stats    statsResponse     `json:"stats"`
}

type statsResponse struct {
	Items       int     `json:"items"`
	Edges       int     `json:"edges"`
	Passes      int     `json:"passes"`
	Levels      int     `json:"levels"`
	EdgesBroken int     `json:"edges_broken"`
	DurationMS  float64 `json:"duration_ms"`
}

type validateResponse struct {
	Valid    bool     `json:"valid"`
	Items    int      `json:"items"`
	Edges    int      `json:"edges"`
	Problems []string `json:"problems"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := decodeDocument(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := s.runner.Execute(ctx, "request "+middleware.GetReqID(ctx), doc)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Document: res.Document,
		Warnings: nonNil(res.Warnings),
		Stats: statsResponse{
			Items:       res.Stats.Items,
			Edges:       res.Stats.Edges,
			Passes:      res.Stats.Passes,
			Levels:      res.Stats.Levels,
			EdgesBroken: res.Stats.EdgesBroken,
			DurationMS:  float64(res.Stats.Duration.Microseconds()) / 1000,
		},
	})
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := decodeDocument(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scene, err := document.ToScene(doc)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := validateResponse{
		Valid:    true,
		Items:    scene.ItemCount(),
		Edges:    scene.EdgeCount(),
		Problems: []string{},
	}
	if err := scene.Validate(); err != nil {
		resp.Valid = false
		resp.Problems = append(resp.Problems, err.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func decodeDocument(w http.ResponseWriter, r *http.Request) (document.Document, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	return document.Read(body, document.FormatJSON)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		loggerFromContext(ctx).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidID:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
