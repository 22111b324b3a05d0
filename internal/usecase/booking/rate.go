package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type RateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RateBooking {
	return &RateBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the customer's rating. Only the booking's own customer
// may rate it, once.
func (uc *RateBooking) Execute(
	ctx context.Context,
	actor Actor,
	bookingID uint,
	rating int,
	review string,
) (*models.Booking, error) {

	var b *models.Booking
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		b, err = loadBooking(ctx, tx, actor, bookingID)
		if err != nil {
			return err
		}
		if b.CustomerID != actor.UserID {
			return httperr.ErrForbidden("not_booking_customer", "only the customer of the booking can rate it")
		}
		if err := domain.Rate(b, rating, review); err != nil {
			return err
		}
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_rated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]int{"rating": rating},
	})

	return b, nil
}
