// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/internal/utils"
	"github.com/tallyhq/tally/models"
)

// stateSubject is the fixed subject of state tokens, keeping them
// distinguishable from session tokens signed with the same key.
const stateSubject = "login-state"

// stateDuration bounds how long a login redirect may stay outstanding.
const stateDuration = 10 * time.Minute

// authService implements [AuthService] on top of a delegated identity
// provider. Tally holds no credentials: login is a redirect, the callback
// exchanges the code over the confidential channel, and everything after
// that runs on Tally's own HS256 session tokens.
type authService struct {
	userRepository store.UserRepository

	authCfg config.Auth
	http    *resty.Client

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService wires an [AuthService] to the user repository and the
// provider endpoints from cfg. The returned service is safe for concurrent
// use; all state is read-only after construction.
func NewAuthService(userRepository store.UserRepository, authCfg config.Auth, sessionCfg config.Session, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		authCfg:        authCfg,
		http:           resty.New().SetTimeout(15 * time.Second),
		tokenSignKey:   sessionCfg.SignKey,
		tokenIssuer:    sessionCfg.Issuer,
		tokenDuration:  sessionCfg.Duration,
		logger:         logger,
	}
}

func (a *authService) LoginURL(state string) string {
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", a.authCfg.ClientID)
	query.Set("redirect_uri", a.authCfg.RedirectURL)
	query.Set("scope", "openid email profile")
	query.Set("state", state)

	separator := "?"
	if strings.Contains(a.authCfg.AuthorizeURL, "?") {
		separator = "&"
	}
	return a.authCfg.AuthorizeURL + separator + query.Encode()
}

func (a *authService) LogoutURL() string {
	return a.authCfg.LogoutURL
}

// StateToken issues a short-lived signed state parameter. Signing reuses
// the session key; the fixed subject keeps a state token from ever passing
// as a session.
func (a *authService) StateToken(ctx context.Context) (string, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, stateSubject, stateDuration, a.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token.SignedString, nil
}

func (a *authService) ValidateState(ctx context.Context, state string) error {
	token, err := utils.ValidateAndParseJWTToken(state, a.tokenSignKey, a.tokenIssuer)
	if err != nil || token.UserID != stateSubject {
		return ErrInvalidState
	}
	return nil
}

// tokenResponse is the provider's token endpoint body. Only the ID token is
// consumed; Tally requests no API access of its own.
type tokenResponse struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

// ExchangeCode swaps the authorization code for tokens at the provider and
// extracts the profile claims from the ID token. The token arrives over the
// confidential client channel, so its signature is not re-verified here.
func (a *authService) ExchangeCode(ctx context.Context, code string) (utils.IdentityClaims, error) {
	log := logger.FromContext(ctx)

	if code == "" {
		return utils.IdentityClaims{}, ErrInvalidDataProvided
	}

	resp, err := a.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"client_id":     a.authCfg.ClientID,
			"client_secret": a.authCfg.ClientSecret,
			"redirect_uri":  a.authCfg.RedirectURL,
		}).
		Post(a.authCfg.TokenURL)
	if err != nil {
		log.Err(err).Msg("token endpoint request failed")
		return utils.IdentityClaims{}, fmt.Errorf("%w: %w", ErrCodeExchangeFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode()).Msg("token endpoint rejected the code")
		return utils.IdentityClaims{}, fmt.Errorf("%w: http %d", ErrCodeExchangeFailed, resp.StatusCode())
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return utils.IdentityClaims{}, fmt.Errorf("%w: decode response: %w", ErrCodeExchangeFailed, err)
	}
	if body.IDToken == "" {
		return utils.IdentityClaims{}, fmt.Errorf("%w: response without id_token", ErrCodeExchangeFailed)
	}

	claims, err := utils.ParseIdentityClaims(body.IDToken)
	if err != nil {
		return utils.IdentityClaims{}, fmt.Errorf("%w: %w", ErrCodeExchangeFailed, err)
	}

	return claims, nil
}

// Authenticate mirrors the provider profile into the users table. Repeat
// logins refresh the stored profile fields.
func (a *authService) Authenticate(ctx context.Context, claims utils.IdentityClaims) (models.User, error) {
	log := logger.FromContext(ctx)

	if claims.Subject == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user := models.User{ID: claims.Subject}
	if claims.Email != "" {
		user.Email = &claims.Email
	}
	if claims.FirstName != "" {
		user.FirstName = &claims.FirstName
	}
	if claims.LastName != "" {
		user.LastName = &claims.LastName
	}
	if claims.PictureURL != "" {
		user.ProfileImageURL = &claims.PictureURL
	}

	saved, err := a.userRepository.UpsertUser(ctx, user)
	if err != nil {
		log.Err(err).Str("userID", claims.Subject).Msg("user upsert failed")
		return models.User{}, fmt.Errorf("user upsert failed: %w", err)
	}

	return saved, nil
}

func (a *authService) GetUser(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// CreateToken issues a signed session JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, userID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw session token string. Every validation failure
// is normalised to [ErrTokenIsExpiredOrInvalid] so callers need not inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil || token.UserID == stateSubject {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
