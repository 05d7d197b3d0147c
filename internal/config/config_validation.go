// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package config

import "time"

// Fallbacks for values the server can run with out of the box. Everything
// security-sensitive (sign key, provider credentials) has no default and is
// checked by validate.
const (
	defaultHTTPAddress     = "0.0.0.0:8080"
	defaultRequestTimeout  = 30 * time.Second
	defaultSessionDuration = 24 * time.Hour
	defaultSessionIssuer   = "tally"
	defaultUploadsDir      = "uploads"
	defaultMaxUploadBytes  = 5 << 20
	defaultLookupBaseURL   = "https://api.upcitemdb.com/prod/trial"
	defaultLookupTimeout   = 5 * time.Second
	defaultSweepMinAge     = time.Hour
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Session.Duration == 0 {
		cfg.Session.Duration = defaultSessionDuration
	}
	if cfg.Session.Issuer == "" {
		cfg.Session.Issuer = defaultSessionIssuer
	}
	if cfg.Storage.Files.UploadsDir == "" {
		cfg.Storage.Files.UploadsDir = defaultUploadsDir
	}
	if cfg.Storage.Files.MaxUploadBytes == 0 {
		cfg.Storage.Files.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Lookup.BaseURL == "" {
		cfg.Lookup.BaseURL = defaultLookupBaseURL
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = defaultLookupTimeout
	}
	if cfg.Workers.SweepMinAge == 0 {
		cfg.Workers.SweepMinAge = defaultSweepMinAge
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server cannot start without.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.SignKey == "" {
		return ErrInvalidSessionConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.API.ServerURL == "" || cfg.API.RequestTimeout == 0 {
		return ErrInvalidClientConfigs
	}

	if cfg.Drafts.Path == "" {
		return ErrInvalidDraftsConfigs
	}

	return nil
}
