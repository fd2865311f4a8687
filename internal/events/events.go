// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package events carries domain events over an in-process Watermill
// pub/sub. Handlers publish on mutations; the audit recorder consumes
// every topic and appends to the audit trail.
package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topics group events by aggregate.
const (
	TopicUsers    = "haven.users"
	TopicProducts = "haven.products"
	TopicReviews  = "haven.reviews"
)

// Event types.
const (
	EventUserSignup     = "user.signup"
	EventUserLogin      = "user.login"
	EventProfileUpdated = "profile.updated"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventReviewCreated  = "review.created"
	EventReviewUpdated  = "review.updated"
	EventReviewDeleted  = "review.deleted"
)

// Event is the wire format for all domain events.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ActorID    string    `json:"actorId,omitempty"`
	SubjectID  string    `json:"subjectId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New builds an event with a fresh ID and the current timestamp.
func New(eventType, actorID, subjectID string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
	}
}

// Marshal encodes the event payload.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal decodes an event payload.
func Unmarshal(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// TopicFor maps an event type to its topic by aggregate prefix.
func TopicFor(eventType string) string {
	switch {
	case eventType == EventProductCreated, eventType == EventProductUpdated, eventType == EventProductDeleted:
		return TopicProducts
	case eventType == EventReviewCreated, eventType == EventReviewUpdated, eventType == EventReviewDeleted:
		return TopicReviews
	default:
		return TopicUsers
	}
}
