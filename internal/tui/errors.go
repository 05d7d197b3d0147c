// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package tui

import "errors"

// ErrUserQuit is returned from Run when the user leaves with Ctrl+C.
var ErrUserQuit = errors.New("user quit the program")

var (
	errNameRequired = errors.New("name is required")
	errBadDate      = errors.New("dates must be yyyy-mm-dd")
	errNoDraftStore = errors.New("no local draft store is configured")
)
