// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package models defines the document types stored by Haven and the
// standardized API response envelope.
package models

import "time"

// Roles form a closed set with no hierarchy. A user is exactly one of the two.
const (
	// RoleArtisan marks sellers who own a storefront and manage products.
	RoleArtisan = "artisan"

	// RoleCustomer marks buyers who place orders and write reviews.
	RoleCustomer = "customer"
)

// ValidRole reports whether s is a member of the role set.
func ValidRole(s string) bool {
	return s == RoleArtisan || s == RoleCustomer
}

// Product status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ArtisanProfile holds storefront details for artisan users.
type ArtisanProfile struct {
	StudioName string   `json:"studioName,omitempty"`
	Location   string   `json:"location,omitempty"`
	Specialty  string   `json:"specialty,omitempty"`
	Story      string   `json:"story,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// User is an account document. The role tags the variant: ArtisanProfile is
// non-nil exactly when Role is RoleArtisan. PasswordHash is the opaque bcrypt
// digest; it never leaves the server (see PublicUser).
type User struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"passwordHash"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	ArtisanProfile *ArtisanProfile `json:"artisanProfile,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	ArtisanProfile *ArtisanProfile `json:"artisanProfile,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Public returns the sanitized projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		ArtisanProfile: u.ArtisanProfile,
		CreatedAt:      u.CreatedAt,
	}
}

// StudioName returns the artisan's display name: the studio name when set,
// otherwise the account name.
func (u *User) StudioName() string {
	if u.ArtisanProfile != nil && u.ArtisanProfile.StudioName != "" {
		return u.ArtisanProfile.StudioName
	}
	return u.Name
}

// Product is a listing document owned by one artisan.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Artisan     string    `json:"artisan"`
	ArtisanID   string    `json:"artisanId"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Review is a customer's rating of a product. At most one review exists per
// (ProductID, UserID) pair.
type Review struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	UserID      string    `json:"userId"`
	Reviewer    string    `json:"reviewer"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Order status values.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a customer's purchase document.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Items     []OrderItem `json:"products"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// AuditEntry records a domain event for the audit trail.
type AuditEntry struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	ActorID   string    `json:"actorId,omitempty"`
	SubjectID string    `json:"subjectId,omitempty"`
	At        time.Time `json:"at"`
}
