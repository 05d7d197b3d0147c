// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrCodeExchangeFailed      = errors.New("authorization code exchange failed")
	ErrInvalidState            = errors.New("invalid login state")

	ErrValidationNameRequired  = errors.New("item name is required")
	ErrValidationBadMoneyValue = errors.New("money values must be non-negative decimals with at most two fraction digits")
	ErrValidationEmptyUpdate   = errors.New("update carries no fields")

	ErrEmptyBarcode = errors.New("empty barcode")
)
