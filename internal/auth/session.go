// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the session JWT.
const SessionCookieName = "token"

// SessionWriter sets and clears the session cookie with consistent
// attributes. Secure comes from configuration so local development over
// plain HTTP still works.
type SessionWriter struct {
	ttl    time.Duration
	secure bool
}

// NewSessionWriter builds a SessionWriter. The TTL should match the
// token manager's so the cookie and the JWT expire together.
func NewSessionWriter(ttl time.Duration, secure bool) *SessionWriter {
	return &SessionWriter{ttl: ttl, secure: secure}
}

// Set writes the session cookie: httpOnly, SameSite=Lax, path "/",
// max age equal to the token TTL.
func (sw *SessionWriter) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sw.ttl.Seconds()),
		HttpOnly: true,
		Secure:   sw.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately. Attributes must match
// Set or browsers treat it as a different cookie.
func (sw *SessionWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sw.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadToken extracts the session token from the request cookie. The
// empty string means no session is present.
func ReadToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
