// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionCookieAttributes(t *testing.T) {
	sw := NewSessionWriter(7*24*time.Hour, true)

	rec := httptest.NewRecorder()
	sw.Set(rec, "signed-token")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Set() wrote %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName {
		t.Errorf("cookie name = %q, want %q", c.Name, SessionCookieName)
	}
	if c.Value != "signed-token" {
		t.Errorf("cookie value = %q", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie is not httpOnly")
	}
	if !c.Secure {
		t.Error("cookie is not secure despite secure config")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", c.SameSite)
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	if want := int((7 * 24 * time.Hour).Seconds()); c.MaxAge != want {
		t.Errorf("cookie MaxAge = %d, want %d", c.MaxAge, want)
	}
}

func TestSessionCookieInsecureDev(t *testing.T) {
	sw := NewSessionWriter(time.Hour, false)

	rec := httptest.NewRecorder()
	sw.Set(rec, "tok")

	if c := rec.Result().Cookies()[0]; c.Secure {
		t.Error("cookie is secure with secure config disabled")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	sw := NewSessionWriter(time.Hour, false)

	rec := httptest.NewRecorder()
	sw.Clear(rec)

	c := rec.Result().Cookies()[0]
	if c.Name != SessionCookieName || c.Value != "" {
		t.Errorf("Clear() cookie = %q=%q", c.Name, c.Value)
	}
	if c.MaxAge >= 0 {
		t.Errorf("Clear() MaxAge = %d, want negative", c.MaxAge)
	}
}

func TestReadToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ReadToken(r); got != "" {
		t.Errorf("ReadToken(no cookie) = %q, want empty", got)
	}

	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	if got := ReadToken(r); got != "abc" {
		t.Errorf("ReadToken() = %q, want %q", got, "abc")
	}
}
