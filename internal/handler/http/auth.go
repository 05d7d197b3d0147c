// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package http

import (
	"net/http"
	"time"

	"github.com/tallyhq/tally/internal/logger"
	"github.com/tallyhq/tally/internal/utils"
)

// login starts the delegated login flow: it issues a signed state parameter
// and redirects the browser to the identity provider's authorize endpoint.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	state, err := h.services.AuthService.StateToken(ctx)
	if err != nil {
		log.Err(err).Msg("issuing login state failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.services.AuthService.LoginURL(state), http.StatusFound)
}

// callback completes the login flow: it validates the returned state,
// exchanges the authorization code for profile claims, mirrors the profile
// into the users table, and issues the session cookie.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()

	if err := h.services.AuthService.ValidateState(ctx, query.Get("state")); err != nil {
		log.Err(err).Msg("login state rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	claims, err := h.services.AuthService.ExchangeCode(ctx, query.Get("code"))
	if err != nil {
		log.Err(err).Msg("authorization code exchange failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, claims)
	if err != nil {
		log.Err(err).Msg("authentication failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user.ID)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if token.ExpiresAt != nil {
		cookie.Expires = token.ExpiresAt.Time
	}
	http.SetCookie(w, cookie)

	log.Debug().Str("userID", user.ID).Msg("user successfully logged in")

	http.Redirect(w, r, "/", http.StatusFound)
}

// logout clears the session cookie and sends the browser to the provider's
// end-session endpoint when one is configured.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	target := h.services.AuthService.LogoutURL()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// currentUser returns the authenticated user's profile.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Msg("user lookup failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
