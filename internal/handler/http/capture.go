// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

type voiceRequest struct {
	Transcript string `json:"transcript"`
}

func (h *Handler) captureVoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req voiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.CaptureService.ProcessVoice(ctx, req.Transcript)
	if err != nil {
		log.Err(err).Msg("voice transcript processing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) captureBarcode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	code := chi.URLParam(r, "code")

	product, err := h.services.CaptureService.LookupBarcode(ctx, code)
	if err != nil {
		log.Err(err).Str("barcode", code).Msg("barcode lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

type photoRequest struct {
	// Labels maps classifier class names to confidence scores. The on-device
	// model produces them; the server only ranks and categorizes.
	Labels map[string]float64 `json:"labels"`
}

type photoResponse struct {
	Detections []models.Detection `json:"detections"`

	// Fallback marks the canned demo set returned when no labels arrived.
	Fallback bool `json:"fallback"`
}

func (h *Handler) capturePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req photoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	detections, fallback := h.services.CaptureService.ClassifyLabels(ctx, req.Labels)

	utils.WriteJSON(w, photoResponse{Detections: detections, Fallback: fallback}, http.StatusOK)
}

type qrDecodeRequest struct {
	Text string `json:"text"`
}

func (h *Handler) captureQRDecode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req qrDecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	payload, err := h.services.CaptureService.DecodeQR(ctx, req.Text)
	if err != nil {
		log.Err(err).Msg("qr text decoding failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, payload, http.StatusOK)
}
