// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package config

import (
	"fmt"
	"time"
)

// ClientAPI holds network settings used by the client transport layer.
type ClientAPI struct {
	// ServerURL is the base URL of the Tally API server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// TokenPath is the optional file the session token is loaded from at
	// startup. Without it the client starts unauthenticated.
	TokenPath string
}

// ClientDrafts contains the local capture-draft store settings.
type ClientDrafts struct {
	// Path is the SQLite file drafts are kept in.
	Path string
}

// ClientConfig is the client-specific view assembled from
// [StructuredConfig].
type ClientConfig struct {
	// API contains client transport address and timeout.
	API ClientAPI
	// Drafts contains the local draft store settings.
	Drafts ClientDrafts
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
//
// It merges the same sources as [GetStructuredConfig] but skips the
// server-only validation, maps the fields relevant to the client runtime,
// and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		buildRaw()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		API: ClientAPI{
			ServerURL:      cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
			TokenPath:      cfg.Client.TokenPath,
		},
		Drafts: ClientDrafts{
			Path: cfg.Client.DraftsPath,
		},
	}

	if clientCfg.API.RequestTimeout == 0 {
		clientCfg.API.RequestTimeout = 15 * time.Second
	}
	if clientCfg.Drafts.Path == "" {
		clientCfg.Drafts.Path = "tally-drafts.db"
	}

	return clientCfg, clientCfg.validate()
}
