package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
)

// Recipient is what a booking email needs to know about its customer.
type Recipient struct {
	Email           string
	Name            string
	BranchName      string
	AppointmentDate time.Time
	Status          string
}

type RecipientLookup interface {
	BookingRecipient(ctx context.Context, bookingID uint) (*Recipient, error)
}

// GormRecipients reads the recipient straight from bookings and users.
type GormRecipients struct {
	db *gorm.DB
}

func NewGormRecipients(db *gorm.DB) *GormRecipients {
	return &GormRecipients{db: db}
}

func (g *GormRecipients) BookingRecipient(ctx context.Context, bookingID uint) (*Recipient, error) {
	var row struct {
		Email           *string
		Name            string
		BranchName      string
		AppointmentDate time.Time
		Status          string
	}
	err := g.db.WithContext(ctx).
		Table("bookings b").
		Select("u.email, u.name, br.name AS branch_name, b.appointment_date, b.status").
		Joins("JOIN users u ON u.id = b.customer_id").
		Joins("JOIN branches br ON br.id = b.branch_id").
		Where("b.id = ?", bookingID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	r := &Recipient{
		Name:            row.Name,
		BranchName:      row.BranchName,
		AppointmentDate: row.AppointmentDate,
		Status:          row.Status,
	}
	if row.Email != nil {
		r.Email = *row.Email
	}
	return r, nil
}

// BookingEmailSink mails the customer when a booking is created or moves
// to a status they care about. Customers without an email are skipped.
type BookingEmailSink struct {
	sender Sender
	lookup RecipientLookup
	loc    *time.Location
}

func NewBookingEmailSink(sender Sender, lookup RecipientLookup, loc *time.Location) *BookingEmailSink {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingEmailSink{sender: sender, lookup: lookup, loc: loc}
}

var notifiedStatuses = map[string]string{
	"confirmed": "Your booking is confirmed",
	"cancelled": "Your booking was cancelled",
	"completed": "Thanks for visiting us",
}

func (s *BookingEmailSink) subject(ev audit.Event) (string, bool) {
	switch ev.Action {
	case "booking_created":
		return "We received your booking", true
	case "booking_status_changed":
		meta, ok := ev.Metadata.(map[string]string)
		if !ok {
			return "", false
		}
		subject, ok := notifiedStatuses[meta["to"]]
		return subject, ok
	}
	return "", false
}

func (s *BookingEmailSink) Write(ctx context.Context, ev audit.Event) error {
	if ev.Entity != "booking" || ev.EntityID == nil {
		return nil
	}
	subject, ok := s.subject(ev)
	if !ok {
		return nil
	}

	r, err := s.lookup.BookingRecipient(ctx, *ev.EntityID)
	if err != nil {
		return fmt.Errorf("notify: booking %d: %w", *ev.EntityID, err)
	}
	if strings.TrimSpace(r.Email) == "" {
		return nil
	}

	return s.sender.Send(r.Email, subject, s.body(*ev.EntityID, r))
}

func (s *BookingEmailSink) body(bookingID uint, r *Recipient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", r.Name)
	fmt.Fprintf(&b, "Booking #%d at %s\n", bookingID, r.BranchName)
	fmt.Fprintf(&b, "When: %s\n", r.AppointmentDate.In(s.loc).Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	return b.String()
}

var _ audit.Sink = (*BookingEmailSink)(nil)
