// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/internal/tui"
	"github.com/tallyhq/tally/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("tally-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.API, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	ctx := context.Background()

	if token, err := loadToken(cfg.API.TokenPath); err != nil {
		log.Warn().Err(err).Msg("session token not loaded; captures will only be kept as drafts")
	} else if token != "" {
		serverAdapter.SetToken(token)
		if user, err := serverAdapter.CurrentUser(ctx); err != nil {
			log.Warn().Err(err).Msg("session check failed; the server may reject captures")
		} else {
			email := ""
			if user.Email != nil {
				email = *user.Email
			}
			log.Info().Str("user", email).Msg("authenticated")
		}
	}

	db, err := store.NewConnectSQLite(ctx, cfg.Drafts.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local draft database")
	}
	defer db.Close()

	drafts, err := store.NewDraftRepository(ctx, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create draft repository")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	ui := tui.New(serverAdapter, drafts, buildInfo, log)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Fatal().Err(err).Msg("client run error")
	}
}

// loadToken reads the session token saved after a browser login. A missing
// path is not an error: the client then runs unauthenticated.
func loadToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
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
