package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/metrics"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ChangeBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hook  domain.RevenueHook
}

func NewChangeBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hook domain.RevenueHook,
) *ChangeBookingStatus {
	if hook == nil {
		hook = domain.NopRevenueHook{}
	}
	return &ChangeBookingStatus{
		repo:  repo,
		audit: audit,
		hook:  hook,
	}
}

// Execute moves the booking to newStatus. Customers may only cancel their
// own bookings.
func (uc *ChangeBookingStatus) Execute(
	ctx context.Context,
	actor Actor,
	bookingID uint,
	newStatus string,
) (*models.Booking, error) {

	next, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	if actor.IsCustomer() && next != domain.StatusCancelled {
		return nil, httperr.ErrForbidden("status_change_forbidden", "customers can only cancel bookings")
	}

	var (
		b    *models.Booking
		prev string
	)
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		b, err = loadBooking(ctx, tx, actor, bookingID)
		if err != nil {
			return err
		}
		prev = b.Status

		if err := domain.Transition(b, next, time.Now()); err != nil {
			return err
		}
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingStatusTransitionsTotal.WithLabelValues(prev, b.Status).Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{
			"from": prev,
			"to":   b.Status,
		},
	})

	if next.IsRevenueCountable() {
		if err := uc.hook.OnRevenueCountable(ctx, b); err != nil {
			log.Error().Err(err).Uint("booking_id", b.ID).Msg("revenue hook failed")
		}
	}

	return b, nil
}
