// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"context"
	"sync"

	"github.com/tallyhq/tally/models"
)

// PlaceholderProduct synthesizes the record used when a lookup fails or
// returns no candidates. Only the raw symbol is trustworthy, so everything
// else is generic and the record is flagged.
func PlaceholderProduct(barcode string) models.Product {
	return models.Product{
		Barcode:     barcode,
		Name:        "Scanned Product",
		Description: "Product with barcode: " + barcode,
		Category:    GeneralCategory,
		Placeholder: true,
	}
}

// PrefillFromProduct converts a lookup result into form prefill data.
func PrefillFromProduct(product models.Product) models.Prefill {
	return models.Prefill{
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Value:       product.Price,
		Barcode:     product.Barcode,
		PhotoURL:    product.ImageURL,
		Source:      MethodBarcode.String(),
		Fallback:    product.Placeholder,
	}
}

// barcodeAdapter waits for the first decoded symbol, performs exactly one
// product lookup, and emits a prefill. Later decodes from the same session
// are ignored.
type barcodeAdapter struct {
	source SymbolSource
	lookup ProductLookup

	cancel     context.CancelFunc
	cancelOnce sync.Once
}

func NewBarcodeAdapter(source SymbolSource, lookup ProductLookup) Adapter {
	return &barcodeAdapter{source: source, lookup: lookup}
}

func (a *barcodeAdapter) Method() Method { return MethodBarcode }

func (a *barcodeAdapter) Start(ctx context.Context) (<-chan Event, error) {
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

		product, err := a.lookup.Lookup(ctx, symbol)
		if err != nil {
			product = PlaceholderProduct(symbol)
		}

		prefill := PrefillFromProduct(product)
		events <- Event{Prefill: &prefill, Fallback: product.Placeholder}
	}()

	return events, nil
}

func (a *barcodeAdapter) Cancel() {
	a.cancelOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		_ = a.source.Close()
	})
}
