// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"time"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/service"
)

// sessionCookieName is the HttpOnly cookie carrying the session JWT for
// browser clients. The terminal client sends the same token as a bearer
// header instead.
const sessionCookieName = "tally_session"

// defaultMaxUploadBytes caps a single uploaded photo when the config leaves
// the limit unset.
const defaultMaxUploadBytes = 5 << 20

type Handler struct {
	services *service.Services

	files          config.Files
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, files config.Files, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		files:          files,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

func (h *Handler) maxUploadBytes() int64 {
	if h.files.MaxUploadBytes > 0 {
		return h.files.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}
