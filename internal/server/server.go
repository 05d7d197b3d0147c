// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

// Package server owns the process lifecycle of the Tally API: it runs the
// HTTP transport and the background workers, and stops both gracefully on
// SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/workers"
)

// Server is the common lifecycle contract of the process.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

type server struct {
	httpServer *httpServer
	workers    []workers.Worker

	stopWorkers context.CancelFunc

	logger *logger.Logger
}

// NewServer wires the HTTP transport and the background workers. Nil entries
// in background are skipped, so disabled workers need no special casing at
// the call site.
func NewServer(router http.Handler, cfg config.Server, background []workers.Worker, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	servers := &server{
		httpServer: newHTTPServer(router, cfg, logger),
		logger:     logger,
	}
	for _, worker := range background {
		if worker != nil {
			servers.workers = append(servers.workers, worker)
		}
	}

	return servers, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	if s.stopWorkers != nil {
		s.stopWorkers()
	}
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}

func (s *server) run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	s.stopWorkers = cancelWorkers

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	for _, worker := range s.workers {
		go worker.Run(workerCtx)
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
