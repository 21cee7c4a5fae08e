package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"clipvault/internal/catalog"
	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/uploads"
)

// Server is the HTTP daemon front end.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *catalog.Service
	uploads *uploads.Service

	listener net.Listener
	server   *http.Server
}

// New wires the HTTP surface over the catalog and upload services.
func New(cfg *config.Config, cat *catalog.Service, up *uploads.Service, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "server"),
		catalog: cat,
		uploads: up,
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public surface.
	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("GET /api/players/{id}", s.handleGetPlayer)
	mux.HandleFunc("GET /api/videos", s.handleListVideos)
	mux.HandleFunc("POST /api/downloads", s.handleDownload)

	// Admin surface.
	admin := http.NewServeMux()
	admin.HandleFunc("POST /admin/api/players", s.handleCreatePlayer)
	admin.HandleFunc("PUT /admin/api/players/{id}", s.handleUpdatePlayer)
	admin.HandleFunc("DELETE /admin/api/players/{id}", s.handleDeletePlayer)
	admin.HandleFunc("POST /admin/api/videos", s.handleCreateVideoDirect)
	admin.HandleFunc("PUT /admin/api/videos/{id}", s.handleUpdateVideoDirect)
	admin.HandleFunc("DELETE /admin/api/videos/{id}", s.handleDeleteVideo)
	admin.HandleFunc("POST /admin/api/uploads", s.handleGenerateUploadURL)
	admin.HandleFunc("POST /admin/api/uploads/confirm", s.handleConfirmUpload)
	admin.HandleFunc("POST /admin/api/uploads/replace", s.handleConfirmReplace)
	admin.HandleFunc("POST /admin/api/uploads/bulk-confirm", s.handleBulkConfirm)
	mux.Handle("/admin/api/", s.basicAuth(admin))

	return s.requestID(s.logRequests(mux))
}

// Start begins serving and shuts down when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	bind := strings.TrimSpace(s.cfg.Server.Bind)
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", bind, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop drains in-flight requests with a short grace period.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
