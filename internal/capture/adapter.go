// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"context"

	"github.com/tallyhq/tally/models"
)

// Event is one message from a running capture adapter. Exactly one of the
// payload fields is meaningful:
//
//   - Interim carries a provisional transcript chunk (voice only).
//   - Detections carries a ranked candidate list the user picks from.
//   - Prefill carries the normalized end result of the capture.
//   - Err terminates the capture with a failure.
//
// The adapter closes its channel after the terminal event.
type Event struct {
	Interim    string
	Detections []models.Detection
	Prefill    *models.Prefill
	Err        error

	// Fallback marks placeholder payloads (demo detections, failed
	// lookups, unstructured QR text).
	Fallback bool
}

// Adapter is a single capture method's driver. Start may be called once;
// Cancel is idempotent and releases the underlying capability.
type Adapter interface {
	Method() Method
	Start(ctx context.Context) (<-chan Event, error)
	Cancel()
}

// Classifier produces scored object labels from the device camera.
type Classifier interface {
	Classify(ctx context.Context) (map[string]float64, error)
	Close() error
}

// SymbolSource yields decoded barcode or QR symbols. Next blocks until a
// symbol decodes, the context ends, or the source is closed.
type SymbolSource interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// Segment is one speech recognition result chunk.
type Segment struct {
	Text  string
	Final bool
}

// Transcriber streams speech recognition segments. The channel closes when
// the user stops dictation or the engine gives up. A device without speech
// support returns [ErrCaptureUnsupported] from Segments.
type Transcriber interface {
	Segments(ctx context.Context) (<-chan Segment, error)
	Close() error
}

// ProductLookup resolves a barcode into product data.
type ProductLookup interface {
	Lookup(ctx context.Context, barcode string) (models.Product, error)
}
