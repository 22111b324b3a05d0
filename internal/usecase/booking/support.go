package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

// walkInGrace is how far in the past staff may place a walk-in booking.
const walkInGrace = time.Minute

func checkAppointmentDate(actor Actor, at time.Time, now time.Time) error {
	if at.IsZero() {
		return httperr.ErrValidation("appointment_date_required", "appointmentDate is required")
	}
	if actor.IsCustomer() {
		if !at.After(now) {
			return httperr.ErrValidation("appointment_in_past", "appointmentDate must be in the future")
		}
		return nil
	}
	if at.Before(now.Add(-walkInGrace)) {
		return httperr.ErrValidation("appointment_in_past", "appointmentDate must not be in the past")
	}
	return nil
}

// loadBooking fetches a booking and hides other customers' bookings.
func loadBooking(ctx context.Context, repo domain.Repository, actor Actor, id uint) (*models.Booking, error) {
	b, err := repo.GetBooking(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("booking_not_found", fmt.Sprintf("booking %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	if actor.IsCustomer() && b.CustomerID != actor.UserID {
		return nil, httperr.ErrNotFound("booking_not_found", fmt.Sprintf("booking %d not found", id))
	}
	return b, nil
}

func loadActiveBranch(ctx context.Context, repo domain.Repository, id uint) (*models.Branch, error) {
	br, err := repo.GetBranch(ctx, id)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && br.Status != models.BranchStatusActive) {
		return nil, httperr.ErrNotFound("branch_not_found", fmt.Sprintf("branch %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return br, nil
}

// loadServices returns the services in the order of ids. Unknown or
// inactive services are a validation error.
func loadServices(ctx context.Context, repo domain.Repository, ids []uint) ([]models.Service, error) {
	ids = domain.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil, httperr.ErrValidation("services_required", "at least one service is required")
	}

	found, err := repo.ListServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		if s.Active {
			byID[s.ID] = s
		}
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrValidation("service_not_found", fmt.Sprintf("service %d does not exist", id))
		}
		out = append(out, s)
	}
	return out, nil
}

// loadEmployee checks that the user is staff working at the branch.
func loadEmployee(ctx context.Context, repo domain.Repository, employeeID, branchID uint) (*models.User, error) {
	u, err := repo.GetUser(ctx, employeeID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !u.IsStaff()) {
		return nil, httperr.ErrNotFound("employee_not_found", fmt.Sprintf("employee %d not found", employeeID))
	}
	if err != nil {
		return nil, err
	}

	ok, err := repo.IsEmployeeOfBranch(ctx, employeeID, branchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrValidation("employee_not_in_branch", "employee does not work at this branch")
	}
	return u, nil
}

// employeeWindow is the range of booking starts that can collide with
// [start, end) or fall on the same day as start.
func employeeWindow(start, end time.Time) (time.Time, time.Time) {
	from := start.Add(-24 * time.Hour)
	to := timezone.StartOfDay(start).AddDate(0, 0, 1)
	if end.After(to) {
		to = end
	}
	return from, to
}

func checkOverlap(
	ctx context.Context,
	repo domain.Repository,
	employeeID uint,
	start, end time.Time,
	excludeID uint,
	reject bool,
) error {
	from, to := employeeWindow(start, end)
	existing, err := repo.ListActiveEmployeeBookings(ctx, employeeID, from, to)
	if err != nil {
		return err
	}

	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		if !domain.Overlaps(start, end, b.AppointmentDate, b.EndTime()) {
			continue
		}
		if reject {
			return httperr.ErrConflict("time_conflict", "employee already has a booking in this time slot")
		}
		log.Warn().
			Uint("employee_id", employeeID).
			Uint("existing_booking_id", b.ID).
			Time("start", start).
			Msg("overlapping booking accepted")
		return nil
	}
	return nil
}

// assignEmployee picks a free barber of the branch, or nil when none is.
func assignEmployee(
	ctx context.Context,
	repo domain.Repository,
	branchID uint,
	start, end time.Time,
) (*models.User, error) {
	barbers, err := repo.ListBranchBarbers(ctx, branchID)
	if err != nil {
		return nil, err
	}

	from, to := employeeWindow(start, end)
	candidates := make([]domain.Candidate, 0, len(barbers))
	for _, u := range barbers {
		bookings, err := repo.ListActiveEmployeeBookings(ctx, u.ID, from, to)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, domain.Candidate{Employee: u, Bookings: bookings})
	}

	return domain.PickEmployee(candidates, start, end), nil
}
