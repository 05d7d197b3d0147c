// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"context"
	"sync"
)

// qrScanAdapter waits for the first decoded QR symbol and emits a prefill.
// Structured payloads map field-for-field; any other text becomes a flagged
// raw-text fallback. Generating a QR label for an existing item is a
// separate, non-adapter path (see NewQRPayload).
type qrScanAdapter struct {
	source SymbolSource

	cancel     context.CancelFunc
	cancelOnce sync.Once
}

func NewQRScanAdapter(source SymbolSource) Adapter {
	return &qrScanAdapter{source: source}
}

func (a *qrScanAdapter) Method() Method { return MethodQR }

func (a *qrScanAdapter) Start(ctx context.Context) (<-chan Event, error) {
	ctx, a.cancel = context.WithCancel(ctx)
	events := make(chan Event, 1)

	go func() {
		defer close(events)

		symbol, err := a.source.Next(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			events <- Event{Err: err}
			return
		}

		payload, err := DecodeQRText(symbol)
		if err != nil {
			events <- Event{Err: err}
			return
		}

		prefill := PrefillFromQR(payload)
		events <- Event{Prefill: &prefill, Fallback: prefill.Fallback}
	}()

	return events, nil
}

func (a *qrScanAdapter) Cancel() {
	a.cancelOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		_ = a.source.Close()
	})
}
