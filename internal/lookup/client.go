// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tallyhq/tally/internal/capture"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

var (
	ErrLookupFailed = errors.New("product lookup failed")
	ErrNoProduct    = errors.New("no product found for barcode")
)

// Client queries a UPCItemDB-compatible product database. It implements
// [capture.ProductLookup]. Failures surface as errors; synthesizing
// placeholder records is the caller's decision.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

func NewClient(cfg config.Lookup, log *logger.Logger) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{http: cli, logger: log}
}

// lookupResponse mirrors the UPCItemDB lookup endpoint body. Only the
// fields Tally consumes are declared.
type lookupResponse struct {
	Items []lookupItem `json:"items"`
}

type lookupItem struct {
	Title               string   `json:"title"`
	Brand               string   `json:"brand"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Images              []string `json:"images"`
	LowestRecordedPrice float64  `json:"lowest_recorded_price"`
}

// Lookup resolves a barcode to product data. The first candidate wins; its
// merchant category string (or failing that its title) runs through the
// product classifier for a Tally category suggestion.
func (c *Client) Lookup(ctx context.Context, barcode string) (models.Product, error) {
	log := logger.FromContext(ctx)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("upc", barcode).
		Get("/lookup")
	if err != nil {
		log.Err(err).Str("barcode", barcode).Msg("product lookup request failed")
		return models.Product{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode()).Str("barcode", barcode).Msg("product lookup rejected")
		return models.Product{}, fmt.Errorf("%w: http %d", ErrLookupFailed, resp.StatusCode())
	}

	var body lookupResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Product{}, fmt.Errorf("%w: decode response: %w", ErrLookupFailed, err)
	}
	if len(body.Items) == 0 {
		return models.Product{}, ErrNoProduct
	}

	item := body.Items[0]

	name := item.Title
	if name == "" {
		name = "Unknown Product"
	}

	product := models.Product{
		Barcode:     barcode,
		Name:        name,
		Brand:       item.Brand,
		Description: item.Description,
		Category:    capture.CategorizeProduct(firstNonEmpty(item.Category, item.Title)),
	}
	if len(item.Images) > 0 {
		product.ImageURL = item.Images[0]
	}
	if item.LowestRecordedPrice > 0 {
		product.Price = fmt.Sprintf("%.2f", item.LowestRecordedPrice)
	}

	return product, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
