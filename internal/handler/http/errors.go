// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting the
// session token. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionCredentials is returned when the request carries neither a
	// session cookie nor an "Authorization" header.
	ErrNoSessionCredentials = errors.New("no session cookie or `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
