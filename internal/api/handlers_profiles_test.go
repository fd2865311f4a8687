// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/cmorton/haven/internal/models"
)

func TestListProfiles(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "maya@example.com", "Maya", "artisan")
	env.signup(t, "casey@example.com", "Casey", "customer")

	rec := env.do(t, http.MethodGet, "/api/profiles", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var all []models.PublicUser
	decode(t, rec, &all)
	if len(all) != 2 {
		t.Errorf("profiles = %d, want 2", len(all))
	}

	rec = env.do(t, http.MethodGet, "/api/profiles?role=artisan", "", nil)
	var artisans []models.PublicUser
	decode(t, rec, &artisans)
	if len(artisans) != 1 || artisans[0].Role != models.RoleArtisan {
		t.Errorf("artisan filter = %+v", artisans)
	}

	rec = env.do(t, http.MethodGet, "/api/profiles?role=admin", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad role status = %d, want 400", rec.Code)
	}
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	artisan, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	customer, _ := env.signup(t, "casey@example.com", "Casey", "customer")
	createProduct(t, env, artisanToken, mugBody())

	draft := mugBody()
	draft["status"] = "draft"
	createProduct(t, env, artisanToken, draft)

	rec := env.do(t, http.MethodGet, "/api/profiles/"+artisan.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var profile struct {
		User     models.PublicUser `json:"user"`
		Products []models.Product  `json:"products"`
	}
	decode(t, rec, &profile)
	if profile.User.ID != artisan.ID {
		t.Errorf("user = %+v", profile.User)
	}
	// Only published products appear on the public profile.
	if len(profile.Products) != 1 {
		t.Errorf("products = %d, want 1", len(profile.Products))
	}

	// A customer ID is not an artisan profile.
	rec = env.do(t, http.MethodGet, "/api/profiles/"+customer.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("customer profile status = %d, want 404", rec.Code)
	}
}

func TestGetArtisanBySlug(t *testing.T) {
	env := newTestEnv(t)
	artisan, token := env.signup(t, "maya@example.com", "Maya", "artisan")

	// Give the artisan a studio name with a space to exercise escaping.
	rec := env.do(t, http.MethodPut, "/api/profiles/"+artisan.ID, token, map[string]interface{}{
		"studioName": "Clay & Kiln",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("profile update status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/profiles/artisan/"+url.PathEscape("Clay & Kiln"), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("slug lookup status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	var profile struct {
		User models.PublicUser `json:"user"`
	}
	decode(t, rec, &profile)
	if profile.User.ID != artisan.ID {
		t.Errorf("slug resolved to %q", profile.User.ID)
	}

	rec = env.do(t, http.MethodGet, "/api/profiles/artisan/Nobody", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug status = %d, want 404", rec.Code)
	}
}

func TestUpdateProfileOwnership(t *testing.T) {
	env := newTestEnv(t)
	artisan, artisanToken := env.signup(t, "maya@example.com", "Maya", "artisan")
	other, otherToken := env.signup(t, "zoe@example.com", "Zoe", "artisan")
	_, customerToken := env.signup(t, "casey@example.com", "Casey", "customer")

	// Another artisan's profile is off limits.
	rec := env.do(t, http.MethodPut, "/api/profiles/"+artisan.ID, otherToken, map[string]interface{}{
		"studioName": "Hijacked",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign update status = %d, want 403", rec.Code)
	}
	resp := decode(t, rec, nil)
	if resp.Error.Message != "You can only update your own profile" {
		t.Errorf("message = %q", resp.Error.Message)
	}

	// Customers cannot update artisan profiles at all.
	rec = env.do(t, http.MethodPut, "/api/profiles/"+other.ID, customerToken, map[string]interface{}{
		"studioName": "Nope",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("customer update status = %d, want 403", rec.Code)
	}

	// Owner updates storefront fields.
	rec = env.do(t, http.MethodPut, "/api/profiles/"+artisan.ID, artisanToken, map[string]interface{}{
		"studioName": "Clay & Kiln",
		"location":   "Portland, OR",
		"specialty":  "ceramics",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update status = %d", rec.Code)
	}
	var got models.PublicUser
	decode(t, rec, &got)
	if got.ArtisanProfile == nil || got.ArtisanProfile.StudioName != "Clay & Kiln" || got.ArtisanProfile.Location != "Portland, OR" {
		t.Errorf("updated profile = %+v", got.ArtisanProfile)
	}
}
