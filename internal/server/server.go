package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dshills/reviewd/internal/review"
)

// Version reported by the health endpoints.
const Version = "1.0.0"

// Service is the single review operation the HTTP layer consumes.
type Service interface {
	ReviewPR(ctx context.Context, req review.Request, opts review.Options) review.Output
}

// Handler serves the REST API.
type Handler struct {
	svc      Service
	provider string
	model    string
	logger   *slog.Logger
}

// NewHandler creates a Handler. provider and model are the defaults applied
// when a review request enables the LLM without naming them.
func NewHandler(svc Service, provider, model string, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Health)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /review", h.Review)
	mux.HandleFunc("GET /demo", h.Demo)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns service status and version.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Mode:    "advisory",
	})
}

// Review reviews a submitted diff and returns the full review output.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	var body ReviewRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	opts := review.Options{}
	if body.UseLLM {
		opts.UseLLM = true
		opts.Provider = body.Provider
		if opts.Provider == "" {
			opts.Provider = h.provider
		}
		opts.Model = body.Model
		if opts.Model == "" {
			opts.Model = h.model
		}
	}

	out := h.svc.ReviewPR(r.Context(), review.Request{
		PRNumber:      body.PRNumber,
		Title:         body.Title,
		Description:   body.Description,
		Author:        body.Author,
		FilesChanged:  body.FilesChanged,
		Diff:          body.Diff,
		CommitMessage: body.CommitMessage,
	}, opts)

	writeJSON(w, http.StatusOK, out)
}

// demoDiff is a canned diff with intentional findings for the demo endpoint.
const demoDiff = "+SECRET_KEY = \"hardcoded-key-123\"\n" +
	"+result = eval(user_input)\n" +
	"+import hashlib\n" +
	"+hashlib.md5(password.encode()).hexdigest()\n" +
	"+from utils import *\n"

// Demo returns a pre-reviewed sample PR, rule-based only.
func (h *Handler) Demo(w http.ResponseWriter, r *http.Request) {
	out := h.svc.ReviewPR(r.Context(), review.Request{
		PRNumber:    9999,
		Title:       "Demo: Auth endpoint with intentional security issues",
		Description: "Sample PR used to demonstrate the rule-based checks.",
		Diff:        demoDiff,
	}, review.Options{})

	writeJSON(w, http.StatusOK, out)
}

// Serve runs the HTTP server until ctx is done, then drains it gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
