package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/email-extractor/internal/config"
	"github.com/JakeFAU/email-extractor/internal/harvest"
	"github.com/JakeFAU/email-extractor/internal/metrics"
)

// Server wires HTTP handlers to the extraction service.
type Server struct {
	router  chi.Router
	service *harvest.Service
	cfg     config.Config
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(service *harvest.Service, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/", s.showForm)
	r.Post("/extract", s.submitForm)
	r.Route("/runs/{run_id}", func(r chi.Router) {
		r.Get("/", s.showRun)
		r.Get("/export.csv", s.exportRun)
	})

	r.Route("/v1/extractions", func(r chi.Router) {
		r.Post("/", s.createExtraction)
		r.Get("/{run_id}", s.getExtraction)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type extractionRequest struct {
	URLs         string `json:"urls"`
	DomainFilter string `json:"domain_filter"`
}

type extractionResponse struct {
	harvest.Run
	Warnings []harvest.Notice `json:"warnings"`
	Errors   []harvest.Notice `json:"errors"`
	Message  string           `json:"message,omitempty"`
	Export   string           `json:"export_url"`
}

func (s *Server) createExtraction(w http.ResponseWriter, r *http.Request) {
	var req extractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	run, err := s.service.Extract(batchContext(r), req.URLs, req.DomainFilter)
	if err != nil {
		if errors.Is(err, harvest.ErrNoURLs) {
			s.writeError(w, http.StatusBadRequest, promptNoURLs)
			return
		}
		s.logger.Error("extraction failed", zap.Error(err), zap.String("request_id", requestID(r.Context())))
		s.writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}
	s.writeJSON(w, http.StatusCreated, newExtractionResponse(run))
}

func (s *Server) getExtraction(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r, s.writeError)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, newExtractionResponse(run))
}

func newExtractionResponse(run harvest.Run) extractionResponse {
	result := run.Result()
	resp := extractionResponse{
		Run:      run,
		Warnings: result.Warnings(),
		Errors:   result.Errors(),
		Export:   exportPath(run.ID),
	}
	if result.Empty() {
		resp.Message = messageNoResults
	}
	return resp
}

// lookupRun resolves the {run_id} URL parameter, reporting a 404 through fail when unknown.
func (s *Server) lookupRun(
	w http.ResponseWriter,
	r *http.Request,
	fail func(http.ResponseWriter, int, string),
) (harvest.Run, bool) {
	runID := chi.URLParam(r, "run_id")
	run, err := s.service.Run(r.Context(), runID)
	if err != nil {
		fail(w, http.StatusNotFound, "run not found")
		return harvest.Run{}, false
	}
	return run, true
}

// batchContext detaches a batch from the request so a dropped client does not cut it short.
// Per-URL fetch timeouts still bound the batch.
func batchContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func exportPath(runID string) string {
	return fmt.Sprintf("/runs/%s/export.csv", runID)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", requestID(r.Context())),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec), zap.String("path", r.URL.Path))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		conn, buf, err := h.Hijack()
		if err != nil {
			return nil, nil, fmt.Errorf("hijack connection: %w", err)
		}
		return conn, buf, nil
	}
	return nil, nil, errors.New("hijacker not supported")
}

type requestIDKey struct{}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
