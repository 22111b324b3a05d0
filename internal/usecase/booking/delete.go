package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actor Actor,
	bookingID uint,
) error {

	var status string
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		b, err := loadBooking(ctx, tx, actor, bookingID)
		if err != nil {
			return err
		}
		if err := domain.CanDelete(domain.Status(b.Status)); err != nil {
			return err
		}
		status = b.Status
		return tx.DeleteBooking(ctx, b.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
		Metadata: map[string]string{"status": status},
	})

	return nil
}
