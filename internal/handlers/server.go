package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"watchwise/internal/config"
	"watchwise/internal/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	config     *config.Config
	logger     *utils.Logger
	httpServer *http.Server
	apiHandler *APIHandler
}

func NewServer(cfg *config.Config, apiHandler *APIHandler, logger *utils.Logger) *Server {
	s := &Server{
		config:     cfg,
		logger:     logger,
		apiHandler: apiHandler,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Router builds the route table. Exposed so tests can drive it directly.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger(s.logger))

	router.HandleFunc("/", s.apiHandler.Hello).Methods("GET")
	router.HandleFunc("/search", s.apiHandler.Search).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// Start binds the configured address and serves until Stop is called.
// A bind failure is returned as is.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	s.logger.Info("Application started listening on", listener.Addr().String())
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
