package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
)

// Publisher is the part of RabbitMQ the event sink needs.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type eventMessage struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	UserID     *uint     `json:"user_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventSink publishes audit events so notification workers can react to
// booking changes. Routing keys look like "booking.booking_created".
type EventSink struct {
	pub Publisher
}

func NewEventSink(pub Publisher) *EventSink {
	return &EventSink{pub: pub}
}

func RoutingKey(ev audit.Event) string {
	return ev.Entity + "." + ev.Action
}

func (s *EventSink) Write(ctx context.Context, ev audit.Event) error {
	body, err := json.Marshal(eventMessage{
		ID:         ev.ID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		UserID:     ev.UserID,
		Metadata:   ev.Metadata,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return err
	}
	return s.pub.Publish(ctx, RoutingKey(ev), body)
}

var _ audit.Sink = (*EventSink)(nil)
