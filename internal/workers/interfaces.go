// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

// Package workers holds the background processes the server runs next to
// the HTTP transport. Workers are started with a context and stop when it is
// cancelled.
package workers

import "context"

// Worker is a background process with a blocking run loop.
type Worker interface {
	// Run blocks until ctx is cancelled.
	Run(ctx context.Context)
}
