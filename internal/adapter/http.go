// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/models"
)

type httpServerAdapter struct {
	client *resty.Client

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.ServerURL and configures the underlying client with the request
// timeout.
//
// Returns an error if cfg.ServerURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.ClientAPI, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// CurrentUser implements [ServerAdapter]. It GETs /api/auth/user; an
// [ErrUnauthorized] result means the held token is missing or stale and the
// user has to log in through the browser again.
func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/user")
	if err != nil {
		return models.User{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode user response: %w", err)
	}

	return user, nil
}

// GetCategories implements [ServerAdapter].
func (h *httpServerAdapter) GetCategories(ctx context.Context) ([]models.Category, error) {
	resp, err := h.authedRequest(ctx).Get("/api/categories")
	if err != nil {
		return nil, fmt.Errorf("categories request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err = json.Unmarshal(resp.Body(), &categories); err != nil {
		return nil, fmt.Errorf("decode categories response: %w", err)
	}

	return categories, nil
}

// CreateItem implements [ServerAdapter]. The terminal client has no photo to
// attach, so the plain JSON create path is used.
func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item).
		Post("/api/items")
	if err != nil {
		return models.Item{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	var saved models.Item
	if err = json.Unmarshal(resp.Body(), &saved); err != nil {
		return models.Item{}, fmt.Errorf("decode item response: %w", err)
	}

	return saved, nil
}

// ProcessVoice implements [ServerAdapter].
func (h *httpServerAdapter) ProcessVoice(ctx context.Context, transcript string) (models.VoiceResult, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"transcript": transcript}).
		Post("/api/capture/voice")
	if err != nil {
		return models.VoiceResult{}, fmt.Errorf("voice request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VoiceResult{}, err
	}

	var result models.VoiceResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.VoiceResult{}, fmt.Errorf("decode voice response: %w", err)
	}

	return result, nil
}

// Lookup implements [ServerAdapter] and the capture package's ProductLookup
// capability. Degradation to a placeholder happens server-side, so any 2xx
// body is a usable product.
func (h *httpServerAdapter) Lookup(ctx context.Context, barcode string) (models.Product, error) {
	resp, err := h.authedRequest(ctx).Get("/api/capture/barcode/" + url.PathEscape(barcode))
	if err != nil {
		return models.Product{}, fmt.Errorf("barcode request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err = json.Unmarshal(resp.Body(), &product); err != nil {
		return models.Product{}, fmt.Errorf("decode product response: %w", err)
	}

	return product, nil
}

// DecodeQR implements [ServerAdapter].
func (h *httpServerAdapter) DecodeQR(ctx context.Context, text string) (models.QRPayload, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post("/api/capture/qr/decode")
	if err != nil {
		return models.QRPayload{}, fmt.Errorf("qr decode request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.QRPayload{}, err
	}

	var payload models.QRPayload
	if err = json.Unmarshal(resp.Body(), &payload); err != nil {
		return models.QRPayload{}, fmt.Errorf("decode qr response: %w", err)
	}

	return payload, nil
}

// ItemQRPayload implements [ServerAdapter].
func (h *httpServerAdapter) ItemQRPayload(ctx context.Context, id int64) (string, error) {
	resp, err := h.authedRequest(ctx).Get(fmt.Sprintf("/api/items/%d/qrcode/payload", id))
	if err != nil {
		return "", fmt.Errorf("qr payload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var body map[string]string
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode qr payload response: %w", err)
	}

	return body["payload"], nil
}

// ItemQRPNG implements [ServerAdapter].
func (h *httpServerAdapter) ItemQRPNG(ctx context.Context, id int64) ([]byte, error) {
	resp, err := h.authedRequest(ctx).Get(fmt.Sprintf("/api/items/%d/qrcode", id))
	if err != nil {
		return nil, fmt.Errorf("qr png request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}
