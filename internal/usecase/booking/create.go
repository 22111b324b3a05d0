package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/metrics"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor Actor

	// Either CustomerID or CustomerPhone identifies the customer. Customers
	// always book for themselves.
	CustomerID    *uint
	CustomerPhone string
	CustomerName  string

	ServiceIDs      []uint
	AppointmentDate time.Time
	EmployeeID      *uint
	BranchID        uint
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo          domain.Repository
	audit         *audit.Dispatcher
	rejectOverlap bool
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rejectOverlap bool,
) *CreateBooking {
	return &CreateBooking{
		repo:          repo,
		audit:         audit,
		rejectOverlap: rejectOverlap,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input checks that need no database
	// --------------------------------------------------
	if err := checkAppointmentDate(in.Actor, in.AppointmentDate, time.Now()); err != nil {
		return nil, err
	}
	if len(domain.UniqueIDs(in.ServiceIDs)) == 0 {
		return nil, httperr.ErrValidation("services_required", "at least one service is required")
	}

	if in.Actor.IsCustomer() {
		id := in.Actor.UserID
		in.CustomerID = &id
	}

	phone := ""
	if in.CustomerID == nil {
		if !validators.IsValidPhone(in.CustomerPhone) {
			return nil, httperr.ErrValidation("invalid_phone", "customer phone is not a valid mobile number")
		}
		phone = validators.CanonicalPhone(in.CustomerPhone)
	}

	b := &models.Booking{
		AppointmentDate: in.AppointmentDate,
		BranchID:        in.BranchID,
		Status:          string(domain.InitialStatus(in.Actor.IsStaff())),
		Notes:           in.Notes,
	}

	// --------------------------------------------------
	// 2. Everything else runs in one transaction
	// --------------------------------------------------
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		branch, err := loadActiveBranch(ctx, tx, in.BranchID)
		if err != nil {
			return err
		}

		services, err := loadServices(ctx, tx, in.ServiceIDs)
		if err != nil {
			return err
		}
		domain.ApplyServices(b, services)

		customer, err := uc.resolveCustomer(ctx, tx, in.CustomerID, phone, in.CustomerName)
		if err != nil {
			return err
		}
		b.CustomerID = customer.ID
		b.Customer = *customer
		b.Branch = *branch

		start, end := b.AppointmentDate, b.EndTime()

		if in.EmployeeID != nil {
			employee, err := loadEmployee(ctx, tx, *in.EmployeeID, branch.ID)
			if err != nil {
				return err
			}
			if err := checkOverlap(ctx, tx, employee.ID, start, end, 0, uc.rejectOverlap); err != nil {
				return err
			}
			b.EmployeeID = &employee.ID
			b.Employee = employee
		} else {
			employee, err := assignEmployee(ctx, tx, branch.ID, start, end)
			if err != nil {
				return err
			}
			if employee != nil {
				b.EmployeeID = &employee.ID
				b.Employee = employee
			} else {
				log.Info().
					Uint("branch_id", branch.ID).
					Time("start", start).
					Msg("no free barber, booking left unassigned")
			}
		}

		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Side effects after commit
	// --------------------------------------------------
	metrics.BookingsCreatedTotal.WithLabelValues(b.Status).Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"status":      b.Status,
			"branch_id":   b.BranchID,
			"employee_id": b.EmployeeID,
			"total_price": b.TotalPrice.StringFixed(2),
		},
	})

	return b, nil
}

func (uc *CreateBooking) resolveCustomer(
	ctx context.Context,
	tx domain.Repository,
	customerID *uint,
	phone string,
	name string,
) (*models.User, error) {

	if customerID != nil {
		u, err := tx.GetUser(ctx, *customerID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("customer_not_found", "customer does not exist")
		}
		return u, err
	}

	u, err := tx.FindUserByPhone(ctx, phone)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		return nil, httperr.ErrValidation("customer_name_required", "customer name is required for new customers")
	}

	u = &models.User{
		Name:               name,
		Phone:              phone,
		Role:               models.RoleCustomer,
		Status:             models.UserStatusActive,
		AvailabilityStatus: models.AvailabilityAvailable,
	}
	if err := tx.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
