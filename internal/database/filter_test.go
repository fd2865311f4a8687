// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package database

import (
	"testing"

	"github.com/cmorton/haven/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestProductFilterMatch(t *testing.T) {
	product := &models.Product{
		Name:        "Hand-Thrown Stoneware Mug",
		Price:       28,
		Category:    "pottery",
		Artisan:     "Clay & Kiln",
		ArtisanID:   "a1",
		Description: "Wheel-thrown mug with a matte glaze",
		Status:      models.StatusPublished,
	}

	tests := []struct {
		name   string
		filter ProductFilter
		want   bool
	}{
		{"empty filter matches", ProductFilter{}, true},
		{"category equality", ProductFilter{Category: "pottery"}, true},
		{"category mismatch", ProductFilter{Category: "jewelry"}, false},
		{"status match", ProductFilter{Status: models.StatusPublished}, true},
		{"status mismatch", ProductFilter{Status: models.StatusDraft}, false},
		{"artisan id", ProductFilter{ArtisanID: "a1"}, true},
		{"artisan id mismatch", ProductFilter{ArtisanID: "a2"}, false},
		{"artisan name", ProductFilter{Artisan: "Clay & Kiln"}, true},
		{"search hits name case-insensitive", ProductFilter{Search: "stoneware"}, true},
		{"search hits description", ProductFilter{Search: "GLAZE"}, true},
		{"search hits artisan", ProductFilter{Search: "kiln"}, true},
		{"search miss", ProductFilter{Search: "quilt"}, false},
		{"min price inclusive", ProductFilter{MinPrice: floatPtr(28)}, true},
		{"min price above", ProductFilter{MinPrice: floatPtr(28.01)}, false},
		{"max price inclusive", ProductFilter{MaxPrice: floatPtr(28)}, true},
		{"max price below", ProductFilter{MaxPrice: floatPtr(27.99)}, false},
		{"price range", ProductFilter{MinPrice: floatPtr(20), MaxPrice: floatPtr(30)}, true},
		{
			"all criteria combined with AND",
			ProductFilter{Category: "pottery", Search: "mug", MinPrice: floatPtr(10), MaxPrice: floatPtr(50)},
			true,
		},
		{
			"one failing criterion rejects",
			ProductFilter{Category: "pottery", Search: "mug", MaxPrice: floatPtr(5)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(product); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReviewFilterMatch(t *testing.T) {
	review := &models.Review{ProductID: "p1", UserID: "u1"}

	tests := []struct {
		name   string
		filter ReviewFilter
		want   bool
	}{
		{"empty matches", ReviewFilter{}, true},
		{"product match", ReviewFilter{ProductID: "p1"}, true},
		{"product mismatch", ReviewFilter{ProductID: "p2"}, false},
		{"user match", ReviewFilter{UserID: "u1"}, true},
		{"user mismatch", ReviewFilter{UserID: "u2"}, false},
		{"both criteria", ReviewFilter{ProductID: "p1", UserID: "u1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(review); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, substr string
		want      bool
	}{
		{"Hand-Thrown Mug", "mug", true},
		{"Hand-Thrown Mug", "MUG", true},
		{"Hand-Thrown Mug", "bowl", false},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		if got := containsFold(tt.s, tt.substr); got != tt.want {
			t.Errorf("containsFold(%q, %q) = %v, want %v", tt.s, tt.substr, got, tt.want)
		}
	}
}
