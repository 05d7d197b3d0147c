// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/capture"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/models"
)

// captureService is the server half of the capture pipeline. The heavy
// lifting (heuristics, QR codec) lives in internal/capture as pure
// functions; this layer adds the product lookup, ownership checks, and
// degradation policy.
type captureService struct {
	lookup             capture.ProductLookup
	itemRepository     store.ItemRepository
	categoryRepository store.CategoryRepository
	logger             *logger.Logger
}

func NewCaptureService(lookup capture.ProductLookup, itemRepository store.ItemRepository, categoryRepository store.CategoryRepository, logger *logger.Logger) CaptureService {
	return &captureService{
		lookup:             lookup,
		itemRepository:     itemRepository,
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

func (s *captureService) ProcessVoice(ctx context.Context, transcript string) (models.VoiceResult, error) {
	result, err := capture.ProcessTranscript(transcript)
	if err != nil {
		return models.VoiceResult{}, err
	}
	return result, nil
}

// LookupBarcode resolves a barcode to product data. Lookup failures and
// empty result sets degrade to a flagged placeholder record; only an empty
// barcode is an error.
func (s *captureService) LookupBarcode(ctx context.Context, barcode string) (models.Product, error) {
	log := logger.FromContext(ctx)

	if barcode == "" {
		return models.Product{}, ErrEmptyBarcode
	}

	product, err := s.lookup.Lookup(ctx, barcode)
	if err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("lookup degraded to placeholder")
		return capture.PlaceholderProduct(barcode), nil
	}

	return product, nil
}

func (s *captureService) ClassifyLabels(ctx context.Context, scored map[string]float64) ([]models.Detection, bool) {
	if len(scored) == 0 {
		return capture.DemoDetections(), true
	}
	return capture.RankDetections(scored), false
}

func (s *captureService) DecodeQR(ctx context.Context, text string) (models.QRPayload, error) {
	return capture.DecodeQRText(text)
}

// ItemQR builds the QR label of an owned item. The payload carries the
// category name (a scanned label must be meaningful on any device, ids are
// not); an item without a category is labelled General.
func (s *captureService) ItemQR(ctx context.Context, id int64, userID string) ([]byte, string, error) {
	if id <= 0 || userID == "" {
		return nil, "", ErrInvalidDataProvided
	}

	item, err := s.itemRepository.GetItem(ctx, id, userID)
	if err != nil {
		return nil, "", fmt.Errorf("item lookup failed: %w", err)
	}

	categoryName := capture.GeneralCategory
	if item.CategoryID != nil {
		categories, err := s.categoryRepository.GetCategories(ctx, userID)
		if err != nil {
			return nil, "", fmt.Errorf("listing categories failed: %w", err)
		}
		for _, category := range categories {
			if category.ID == *item.CategoryID {
				categoryName = category.Name
				break
			}
		}
	}

	payload := capture.NewQRPayload(item.Name, categoryName, deref(item.Description), deref(item.CurrentValue), time.Now())

	serialized, err := capture.EncodeQRPayload(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encoding qr payload failed: %w", err)
	}

	png, err := capture.RenderQRPNG(serialized)
	if err != nil {
		return nil, "", fmt.Errorf("rendering qr png failed: %w", err)
	}

	return png, serialized, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
