// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package main

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/config"
	handler "github.com/tallyhq/tally/internal/handler/http"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/lookup"
	"github.com/tallyhq/tally/internal/server"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("tally-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	lookupClient := lookup.NewClient(cfg.Lookup, log)
	services := service.NewServices(storages, lookupClient, cfg, log)

	h := handler.NewHandler(services, cfg.Storage.Files, cfg.Server.RequestTimeout, log)

	var background []workers.Worker
	if sweeper := workers.NewUploadsSweeper(cfg.Storage.Files, cfg.Workers, storages.ItemRepository, log); sweeper != nil {
		background = append(background, sweeper)
	}

	srv, err := server.NewServer(h.Init(), cfg.Server, background, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
