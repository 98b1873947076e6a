// Package server exposes the clinic store and services over HTTP. Handlers
// are thin: decode, delegate, encode. Typed errors from the lower layers
// map onto HTTP status codes in one place.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/CrissP24/clinica-joya-sub000/internal/iam"
	"github.com/CrissP24/clinica-joya-sub000/internal/notification"
	"github.com/CrissP24/clinica-joya-sub000/internal/scheduling"
	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/config"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/types"
)

// Server wires the clinic services to an HTTP listener
type Server struct {
	config    *config.Config
	store     *store.Store
	scheduler *scheduling.Service
	auth      *iam.Service
	notifier  *notification.Manager
	logger    *logger.Logger
	router    *mux.Router
	http      *http.Server
}

// New creates a new server with all routes configured
func New(cfg *config.Config, st *store.Store, scheduler *scheduling.Service, auth *iam.Service, notifier *notification.Manager, log *logger.Logger) *Server {
	s := &Server{
		config:    cfg,
		store:     st,
		scheduler: scheduler,
		auth:      auth,
		notifier:  notifier,
		logger:    log,
		router:    mux.NewRouter(),
	}
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}
	return s
}

// Router returns the configured router, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving HTTP requests and blocks until the listener stops
func (s *Server) Start() error {
	s.logger.WithField("addr", s.http.Addr).Info("HTTP server starting")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server stopping")
	return s.http.Shutdown(ctx)
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response")
	}
}

// writeErrorResponse maps an error onto an HTTP status and writes the body
func (s *Server) writeErrorResponse(w http.ResponseWriter, err error) {
	statusCode := statusForError(err)

	response := map[string]interface{}{
		"error":  err.Error(),
		"status": statusCode,
	}
	if ce, ok := err.(*types.ClinicError); ok {
		response["code"] = ce.Code
		response["error"] = ce.Message
	}

	if statusCode >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
	}
	s.writeJSONResponse(w, statusCode, response)
}

// statusForError maps error kinds to HTTP status codes
func statusForError(err error) int {
	switch types.KindOf(err) {
	case types.ErrorKindValidation:
		return http.StatusBadRequest
	case types.ErrorKindNotFound:
		return http.StatusNotFound
	case types.ErrorKindConflict:
		return http.StatusConflict
	case types.ErrorKindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
