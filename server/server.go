// Package server exposes outline extraction over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/tenebris-tech/docxoutline/outline"
)

// DefaultMaxUploadBytes limits the size of documents posted to /api/outline
const DefaultMaxUploadBytes = 64 << 20

// Server serves the outline API.
type Server struct {
	extractor      *outline.Extractor
	logger         *slog.Logger
	addr           string
	root           string
	maxUploadBytes int64
}

// Config holds configuration for the server.
type Config struct {
	Extractor *outline.Extractor
	Logger    *slog.Logger
	Addr      string
	// Root resolves relative filenames in tool requests. Empty means the
	// process working directory.
	Root           string
	MaxUploadBytes int64
}

// outlineRequest is the body of the get_document_outline tool call
type outlineRequest struct {
	Filename string `json:"filename"`
}

// New creates a server instance.
func New(cfg Config) *Server {
	if cfg.Extractor == nil {
		cfg.Extractor = outline.New(outline.WithLogger(cfg.Logger))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{
		extractor:      cfg.Extractor,
		logger:         cfg.Logger,
		addr:           cfg.Addr,
		root:           cfg.Root,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/tools/get_document_outline", s.handleTool)
		r.Post("/outline", s.handleUpload)
	})

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting outline server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down outline server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	var req outlineRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, outline.ErrorResponse{
			Error:      outline.KindValueError,
			Message:    "invalid request body",
			Suggestion: `send a JSON object such as {"filename": "report.docx"}`,
			Details:    err.Error(),
		})
		return
	}

	path := req.Filename
	if path != "" && s.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}

	doc, err := s.extractor.ExtractFile(path)
	if err != nil {
		s.writeError(w, err, req.Filename)
		return
	}
	s.writeJSON(w, http.StatusOK, outline.NewResponse(doc))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		status := http.StatusBadRequest
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSON(w, status, outline.ErrorResponse{
			Error:      outline.KindValueError,
			Message:    "could not read document",
			Suggestion: fmt.Sprintf("send the .docx bytes as the request body (at most %d bytes)", s.maxUploadBytes),
			Details:    err.Error(),
		})
		return
	}

	doc, err := s.extractor.Extract(data)
	if err != nil {
		s.writeError(w, err, "upload")
		return
	}
	s.writeJSON(w, http.StatusOK, outline.NewResponse(doc))
}

func (s *Server) writeError(w http.ResponseWriter, err error, path string) {
	resp := outline.NewErrorResponse(err, path)
	s.logger.Debug("outline request failed", "kind", resp.Error, "error", err)
	s.writeJSON(w, statusFor(resp.Error), resp)
}

// statusFor maps an error kind to an HTTP status
func statusFor(kind string) int {
	switch kind {
	case outline.KindValueError:
		return http.StatusBadRequest
	case outline.KindFileNotFound:
		return http.StatusNotFound
	case outline.KindPermissionDenied:
		return http.StatusForbidden
	case outline.KindDocxError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := outline.RenderJSON(w, v); err != nil {
		s.logger.Warn("writing response", "error", err)
	}
}
