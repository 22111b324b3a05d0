package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
)

type sent struct {
	to, subject, body string
}

type fakeSender struct {
	out []sent
	err error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.out = append(f.out, sent{to, subject, body})
	return f.err
}

type fakeLookup map[uint]*Recipient

func (f fakeLookup) BookingRecipient(_ context.Context, id uint) (*Recipient, error) {
	r, ok := f[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return r, nil
}

func bookingEvent(action string, id uint, meta any) audit.Event {
	return audit.Event{Action: action, Entity: "booking", EntityID: &id, Metadata: meta}
}

func TestBookingEmailSink(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	lookup := fakeLookup{
		1: {Email: "an@example.com", Name: "An", BranchName: "District 1",
			AppointmentDate: time.Date(2026, 10, 20, 3, 0, 0, 0, time.UTC), Status: "confirmed"},
		2: {Name: "Walk-in", BranchName: "District 1", Status: "pending"},
	}

	t.Run("created booking is mailed in local time", func(t *testing.T) {
		s := &fakeSender{}
		sink := NewBookingEmailSink(s, lookup, ict)

		require.NoError(t, sink.Write(context.Background(), bookingEvent("booking_created", 1, nil)))

		require.Len(t, s.out, 1)
		assert.Equal(t, "an@example.com", s.out[0].to)
		assert.Equal(t, "We received your booking", s.out[0].subject)
		assert.Contains(t, s.out[0].body, "Booking #1 at District 1")
		assert.Contains(t, s.out[0].body, "20/10/2026 10:00")
	})

	t.Run("only selected transitions are mailed", func(t *testing.T) {
		s := &fakeSender{}
		sink := NewBookingEmailSink(s, lookup, ict)
		ctx := context.Background()

		require.NoError(t, sink.Write(ctx, bookingEvent("booking_status_changed", 1,
			map[string]string{"from": "confirmed", "to": "in_progress"})))
		require.NoError(t, sink.Write(ctx, bookingEvent("booking_status_changed", 1,
			map[string]string{"from": "pending", "to": "cancelled"})))
		require.NoError(t, sink.Write(ctx, bookingEvent("booking_rated", 1, nil)))

		require.Len(t, s.out, 1)
		assert.Equal(t, "Your booking was cancelled", s.out[0].subject)
	})

	t.Run("customers without email are skipped", func(t *testing.T) {
		s := &fakeSender{}
		sink := NewBookingEmailSink(s, lookup, ict)

		require.NoError(t, sink.Write(context.Background(), bookingEvent("booking_created", 2, nil)))
		assert.Empty(t, s.out)
	})

	t.Run("other entities are ignored", func(t *testing.T) {
		s := &fakeSender{}
		sink := NewBookingEmailSink(s, lookup, ict)

		require.NoError(t, sink.Write(context.Background(), audit.Event{Action: "booking_created", Entity: "user"}))
		assert.Empty(t, s.out)
	})

	t.Run("lookup and send failures are returned", func(t *testing.T) {
		s := &fakeSender{err: errors.New("smtp down")}
		sink := NewBookingEmailSink(s, lookup, ict)
		ctx := context.Background()

		assert.Error(t, sink.Write(ctx, bookingEvent("booking_created", 99, nil)))
		assert.EqualError(t, sink.Write(ctx, bookingEvent("booking_created", 1, nil)), "smtp down")
	})
}
