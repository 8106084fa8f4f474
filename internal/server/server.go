// Package server exposes the conversion pipeline as an HTTP upload API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lanezero/heatsheet/internal/config"
	"github.com/lanezero/heatsheet/internal/heats"
	"github.com/lanezero/heatsheet/internal/pdf"
	"github.com/lanezero/heatsheet/internal/roster"
)

// multipartOverhead covers boundary markers and part headers so a file at
// exactly the size limit still parses.
const multipartOverhead = 10 * 1024

// Server serves the upload API: a multipart PDF in, a rendered heats
// table out.
type Server struct {
	addr        string
	maxFileSize int64
	logger      *slog.Logger
	svc         *heats.Service
	router      *chi.Mux
	httpServer  *http.Server
	version     string
}

// New creates a server from the supplied configuration.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:        cfg.Address(),
		maxFileSize: cfg.MaxFileSize,
		logger:      logger,
		svc:         heats.NewService(cfg.MaxFileSize, cfg.MaxHeatsPerEvent),
		version:     cfg.Version,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealthz)
		r.Post("/convert", s.handleConvert)
	})

	s.router = r
	return s
}

// Handler returns the routing handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP listener until it fails or Stop is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	s.logger.Info("Starting heatsheet server", "addr", s.addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop shuts the server down, letting in-flight conversions finish.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
	}

	s.logger.Info("Server stopped")
	return nil
}

// handleHealthz reports liveness.
// GET /api/v1/healthz
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// handleConvert converts an uploaded program PDF.
// POST /api/v1/convert with a multipart "file" part. Query parameters:
// format selects xlsx (default), csv or tsv; for delimited formats
// table=alternates returns the alternates table instead of the heats table.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	format, err := heats.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table := r.URL.Query().Get("table")
	if table != "" && table != "heats" && table != "alternates" {
		writeError(w, http.StatusBadRequest, "table must be 'heats' or 'alternates'")
		return
	}
	if table == "alternates" && format == heats.FormatXLSX {
		writeError(w, http.StatusBadRequest, "the xlsx workbook already contains the alternates sheet")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxFileSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds the %d byte limit", s.maxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "multipart 'file' part is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if int64(len(data)) > s.maxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds the %d byte limit", s.maxFileSize))
		return
	}

	result, err := s.svc.ConvertUpload(data, format)
	if err != nil {
		s.logger.Warn("Conversion failed",
			"file", header.Filename,
			"size", len(data),
			"error", err)
		if errors.Is(err, roster.ErrNoText) || errors.Is(err, pdf.ErrNoText) {
			writeError(w, http.StatusUnprocessableEntity, "no roster text could be extracted from the PDF")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := result.Primary
	suffix := ""
	if table == "alternates" {
		body = result.Alternates
		suffix = "_alternates"
	}

	s.logger.Info("Converted program",
		"file", header.Filename,
		"format", string(format),
		"events", len(result.Document.Events),
		"heats", result.Document.HeatCount(),
		"alternates", len(result.Document.Alternates))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "heats"+suffix+format.Ext()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
