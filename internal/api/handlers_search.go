// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"net/http"

	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/models"
)

const searchLimit = 50

// searchResponse bundles the result page with the category facet so the
// client renders filter options without a second round trip.
type searchResponse struct {
	Results []*models.Product `json:"results"`
	Count   int               `json:"count"`
	Filters struct {
		Categories []string `json:"categories"`
	} `json:"filters"`
}

// Search queries published products by text, category, artisan name and
// price range. All criteria combine with AND; the text search ORs over
// name, description and artisan.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Artisan:  q.Get("artisan"),
		MinPrice: getFloatParam(r, "minPrice"),
		MaxPrice: getFloatParam(r, "maxPrice"),
		Status:   models.StatusPublished,
	}

	products, err := h.store.FindProducts(r.Context(), filter, searchLimit)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	resp := searchResponse{Results: products, Count: len(products)}
	resp.Filters.Categories = categories
	respondSuccess(w, http.StatusOK, resp)
}
