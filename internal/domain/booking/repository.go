package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Returning an error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Branch / staff --------
	GetBranch(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	IsEmployeeOfBranch(
		ctx context.Context,
		employeeID uint,
		branchID uint,
	) (bool, error)

	ListBranchBarbers(
		ctx context.Context,
		branchID uint,
	) ([]models.User, error)

	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	FindUserByPhone(
		ctx context.Context,
		phone string,
	) (*models.User, error)

	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	// -------- Services --------
	ListServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Bookings --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// UpdateBooking persists the booking columns, never its service lines.
	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ReplaceBookingServices(
		ctx context.Context,
		bookingID uint,
		lines []models.BookingService,
	) error

	// DeleteBooking removes the booking together with its service lines.
	DeleteBooking(
		ctx context.Context,
		id uint,
	) error

	ListBookings(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Booking, int64, error)

	// ListActiveEmployeeBookings returns pending, confirmed and in-progress
	// bookings of the employee that start in [from, to). Inside Transaction
	// it holds the employee until commit.
	ListActiveEmployeeBookings(
		ctx context.Context,
		employeeID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)
}

// RevenueHook is notified after a booking enters a revenue-countable status.
// Loyalty programs plug in here.
type RevenueHook interface {
	OnRevenueCountable(ctx context.Context, b *models.Booking) error
}

type NopRevenueHook struct{}

func (NopRevenueHook) OnRevenueCountable(context.Context, *models.Booking) error { return nil }
