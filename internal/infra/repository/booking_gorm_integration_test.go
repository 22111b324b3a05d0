//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	uc "github.com/BruksfildServices01/salon-manager/internal/usecase/booking"
)

func newBooking(f fixture, at time.Time, status domain.Status, services ...models.Service) *models.Booking {
	b := &models.Booking{
		AppointmentDate: at,
		CustomerID:      f.customer.ID,
		EmployeeID:      &f.barber.ID,
		BranchID:        f.branch.ID,
		Status:          string(status),
	}
	domain.ApplyServices(b, services)
	return b
}

func TestBookingRepository_CreateWritesLines(t *testing.T) {
	f := seed(t)
	repo := repository.NewBookingGormRepository(gdb)
	ctx := context.Background()

	b := newBooking(f, time.Now().Add(48*time.Hour), domain.StatusConfirmed, f.haircut, f.shave)
	require.NoError(t, repo.CreateBooking(ctx, b))
	require.NotZero(t, b.ID)

	assert.Equal(t, int64(2), countLines(t, b.ID))

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, got.Customer.ID)
	assert.Equal(t, f.branch.ID, got.Branch.ID)
	require.NotNil(t, got.Employee)
	assert.Equal(t, f.barber.ID, got.Employee.ID)
	require.Len(t, got.Services, 2)

	sum := decimal.Zero
	for _, l := range got.Services {
		assert.Equal(t, l.ServiceID, l.Service.ID)
		sum = sum.Add(l.ServicePrice)
	}
	assert.True(t, sum.Equal(got.TotalPrice))
	assert.True(t, decimal.NewFromInt(150000).Equal(got.TotalPrice))
}

func TestBookingRepository_FailedCreateLeavesNothing(t *testing.T) {
	f := seed(t)
	repo := repository.NewBookingGormRepository(gdb)
	ctx := context.Background()

	b := newBooking(f, time.Now().Add(48*time.Hour), domain.StatusConfirmed, f.haircut)
	// the line references a service that does not exist
	b.Services = append(b.Services, models.BookingService{ServiceID: 9999, ServicePrice: decimal.NewFromInt(1)})

	err := repo.CreateBooking(ctx, b)
	require.Error(t, err)
	assert.True(t, httperr.IsForeignKeyViolation(err))

	var bookings, lines int64
	require.NoError(t, gdb.Model(&models.Booking{}).Count(&bookings).Error)
	require.NoError(t, gdb.Model(&models.BookingService{}).Count(&lines).Error)
	assert.Zero(t, bookings)
	assert.Zero(t, lines)
}

func TestBookingRepository_ReplaceAndDeleteLeaveNoOrphans(t *testing.T) {
	f := seed(t)
	repo := repository.NewBookingGormRepository(gdb)
	ctx := context.Background()

	b := newBooking(f, time.Now().Add(48*time.Hour), domain.StatusPending, f.haircut, f.shave)
	require.NoError(t, repo.CreateBooking(ctx, b))
	other := newBooking(f, time.Now().Add(72*time.Hour), domain.StatusPending, f.shave)
	require.NoError(t, repo.CreateBooking(ctx, other))

	domain.ApplyServices(b, []models.Service{f.shave})
	require.NoError(t, repo.UpdateBooking(ctx, b))
	require.NoError(t, repo.ReplaceBookingServices(ctx, b.ID, b.Services))
	assert.Equal(t, int64(1), countLines(t, b.ID))

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got.Services, 1)
	assert.Equal(t, f.shave.ID, got.Services[0].ServiceID)
	assert.True(t, decimal.NewFromInt(50000).Equal(got.TotalPrice))

	require.NoError(t, repo.DeleteBooking(ctx, b.ID))
	assert.Zero(t, countLines(t, b.ID))

	_, err = repo.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteBooking(ctx, b.ID), domain.ErrNotFound)

	// the other booking keeps its line
	assert.Equal(t, int64(1), countLines(t, other.ID))
}

func TestBookingRepository_ListActiveEmployeeBookingsWindow(t *testing.T) {
	f := seed(t)
	repo := repository.NewBookingGormRepository(gdb)
	ctx := context.Background()

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	for _, b := range []*models.Booking{
		newBooking(f, start, domain.StatusConfirmed, f.haircut),
		newBooking(f, start.Add(time.Hour), domain.StatusCancelled, f.haircut),
		newBooking(f, start.Add(2*time.Hour), domain.StatusInProgress, f.haircut),
		newBooking(f, start.Add(3*time.Hour), domain.StatusPending, f.haircut),
	} {
		require.NoError(t, repo.CreateBooking(ctx, b))
	}

	got, err := repo.ListActiveEmployeeBookings(ctx, f.barber.ID, start, start.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, start.Unix(), got[0].AppointmentDate.Unix())
	assert.Equal(t, start.Add(2*time.Hour).Unix(), got[1].AppointmentDate.Unix())

	_, err = repo.ListActiveEmployeeBookings(ctx, 9999, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Two concurrent creates for the same free employee and slot must not both
// succeed, even though no booking row exists to lock beforehand.
func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	f := seed(t)
	repo := repository.NewBookingGormRepository(gdb)
	create := uc.NewCreateBooking(repo, nil, true)

	at := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	admin := uc.Actor{UserID: f.barber.ID, Role: models.RoleAdmin}

	const attempts = 4
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := create.Execute(context.Background(), uc.CreateBookingInput{
				Actor:           admin,
				CustomerID:      &f.customer.ID,
				ServiceIDs:      []uint{f.haircut.ID},
				AppointmentDate: at,
				EmployeeID:      &f.barber.ID,
				BranchID:        f.branch.ID,
			})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		var be httperr.BusinessError
		require.True(t, errors.As(err, &be), err)
		assert.Equal(t, "time_conflict", be.Code)
	}
	assert.Equal(t, 1, ok)

	var stored int64
	require.NoError(t, gdb.Model(&models.Booking{}).
		Where("employee_id = ?", f.barber.ID).
		Count(&stored).Error)
	assert.Equal(t, int64(1), stored)
}
