// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates invalid session token settings
	// (for example, a missing sign key).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidClientConfigs indicates invalid terminal client settings
	// (for example, missing server URL or request timeout).
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
	// ErrInvalidDraftsConfigs indicates invalid capture drafts settings
	// (for example, an empty SQLite path).
	ErrInvalidDraftsConfigs = errors.New("invalid drafts configuration")
)
