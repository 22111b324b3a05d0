package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// UpdateBookingInput carries the fields to change. Nil means unchanged.
type UpdateBookingInput struct {
	Actor     Actor
	BookingID uint

	AppointmentDate *time.Time
	Notes           *string
	EmployeeID      *uint
	ServiceIDs      []uint
}

type UpdateBooking struct {
	repo          domain.Repository
	audit         *audit.Dispatcher
	rejectOverlap bool
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rejectOverlap bool,
) *UpdateBooking {
	return &UpdateBooking{
		repo:          repo,
		audit:         audit,
		rejectOverlap: rejectOverlap,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	if in.AppointmentDate != nil {
		if err := checkAppointmentDate(in.Actor, *in.AppointmentDate, time.Now()); err != nil {
			return nil, err
		}
	}

	changed := map[string]any{}

	var b *models.Booking
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		b, err = loadBooking(ctx, tx, in.Actor, in.BookingID)
		if err != nil {
			return err
		}
		if err := domain.CanEdit(domain.Status(b.Status)); err != nil {
			return err
		}

		if in.AppointmentDate != nil {
			b.AppointmentDate = *in.AppointmentDate
			changed["appointment_date"] = b.AppointmentDate
		}
		if in.Notes != nil {
			b.Notes = *in.Notes
			changed["notes"] = true
		}

		servicesChanged := in.ServiceIDs != nil
		if servicesChanged {
			services, err := loadServices(ctx, tx, in.ServiceIDs)
			if err != nil {
				return err
			}
			domain.ApplyServices(b, services)
			changed["service_ids"] = domain.UniqueIDs(in.ServiceIDs)
		}

		if in.EmployeeID != nil {
			employee, err := loadEmployee(ctx, tx, *in.EmployeeID, b.BranchID)
			if err != nil {
				return err
			}
			b.EmployeeID = &employee.ID
			b.Employee = employee
			changed["employee_id"] = employee.ID
		}

		// the slot may have moved or grown
		if b.EmployeeID != nil && (in.AppointmentDate != nil || servicesChanged || in.EmployeeID != nil) {
			if err := checkOverlap(ctx, tx, *b.EmployeeID, b.AppointmentDate, b.EndTime(), b.ID, uc.rejectOverlap); err != nil {
				return err
			}
		}

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		if servicesChanged {
			return tx.ReplaceBookingServices(ctx, b.ID, b.Services)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.UserID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: changed,
	})

	return b, nil
}
