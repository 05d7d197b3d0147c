// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"errors"
	"net/http"

	"github.com/tallyhq/tally/internal/capture"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidationNameRequired:  http.StatusBadRequest,
	service.ErrValidationBadMoneyValue: http.StatusBadRequest,
	service.ErrValidationEmptyUpdate:   http.StatusBadRequest,
	service.ErrEmptyBarcode:            http.StatusBadRequest,
	service.ErrInvalidState:            http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrCodeExchangeFailed:      http.StatusBadGateway,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	capture.ErrEmptyTranscript: http.StatusBadRequest,
	capture.ErrEmptyQRText:     http.StatusBadRequest,

	ErrUploadTooLarge: http.StatusBadRequest,
	ErrUploadNotImage: http.StatusBadRequest,

	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrCategoryNotFound:    http.StatusNotFound,
	store.ErrItemNotFound:        http.StatusNotFound,
	store.ErrForeignKeyViolation: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
