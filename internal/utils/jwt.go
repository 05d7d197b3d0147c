// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tallyhq/tally/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 session token.
//
// The token includes the standard claims:
//   - Issuer    (iss): identifies the Tally deployment that issued it
//   - Subject   (sub): the identity-provider user id
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateJWTToken(issuer, userID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given session token string and
// extracts its claims.
//
// Validation includes signature verification against signKey, the issuer
// claim check, and expiry. Returns the parsed token with the UserID cache
// populated from the "sub" claim, or an error on any validation failure.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userID == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, UserID: userID}, nil
}

// ParseBearerToken extracts the token part of an "Authorization" header of
// the form "<scheme> <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// IdentityClaims is the subset of ID-token claims Tally reads from the
// external identity provider to build the local user profile.
type IdentityClaims struct {
	Subject    string
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
}

// ParseIdentityClaims extracts profile claims from a provider-issued ID
// token without verifying its signature. The token arrives over the
// confidential code-exchange channel directly from the provider, which is
// the trust anchor here; Tally never accepts ID tokens from the browser.
func ParseIdentityClaims(idToken string) (IdentityClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return IdentityClaims{}, fmt.Errorf("error parsing identity token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return IdentityClaims{}, errors.New("invalid identity token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return IdentityClaims{}, errors.New("identity token without subject")
	}

	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}

	return IdentityClaims{
		Subject:    sub,
		Email:      str("email"),
		FirstName:  str("given_name"),
		LastName:   str("family_name"),
		PictureURL: str("picture"),
	}, nil
}
