// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/cmorton/haven/internal/database"
	"github.com/cmorton/haven/internal/logging"
	"github.com/cmorton/haven/internal/models"
)

// AuditRecorder consumes every topic and appends entries to the audit
// collection. It runs as one service under the supervision tree.
type AuditRecorder struct {
	bus   *Bus
	store *database.Store
}

// NewAuditRecorder wires the recorder to the bus and store.
func NewAuditRecorder(bus *Bus, store *database.Store) *AuditRecorder {
	return &AuditRecorder{bus: bus, store: store}
}

// Run subscribes to all topics and processes messages until ctx is
// canceled. A store failure nacks the message so Watermill redelivers.
func (a *AuditRecorder) Run(ctx context.Context) error {
	topics := []string{TopicUsers, TopicProducts, TopicReviews}
	streams := make([]<-chan *message.Message, 0, len(topics))
	for _, topic := range topics {
		stream, err := a.bus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		streams = append(streams, stream)
	}

	merged := make(chan *message.Message)
	for _, stream := range streams {
		go func(in <-chan *message.Message) {
			for msg := range in {
				select {
				case merged <- msg:
				case <-ctx.Done():
					msg.Nack()
					return
				}
			}
		}(stream)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-merged:
			a.handle(ctx, msg)
		}
	}
}

func (a *AuditRecorder) handle(ctx context.Context, msg *message.Message) {
	event, err := Unmarshal(msg.Payload)
	if err != nil {
		logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping undecodable event")
		msg.Ack()
		return
	}

	entry := &models.AuditEntry{
		ID:        event.ID,
		Event:     event.Type,
		ActorID:   event.ActorID,
		SubjectID: event.SubjectID,
		At:        event.OccurredAt,
	}
	if err := a.store.AppendAudit(ctx, entry); err != nil {
		logging.Error().Err(err).Str("event", event.Type).Msg("Failed to append audit entry")
		msg.Nack()
		return
	}

	logging.Debug().
		Str("event", event.Type).
		Str("actor_id", event.ActorID).
		Str("subject_id", event.SubjectID).
		Msg("Audit entry recorded")
	msg.Ack()
}
