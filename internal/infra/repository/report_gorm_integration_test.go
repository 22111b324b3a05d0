//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingdomain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func seedRevenue(t *testing.T, f fixture) {
	t.Helper()
	repo := repository.NewBookingGormRepository(gdb)
	ctx := context.Background()

	bookings := []*models.Booking{
		// counted
		newBooking(f, day(2026, time.January, 1, 0), bookingdomain.StatusCompleted, f.haircut),
		newBooking(f, day(2026, time.March, 10, 9), bookingdomain.StatusCompleted, f.haircut, f.shave),
		newBooking(f, day(2026, time.April, 5, 14), bookingdomain.StatusSuccess, f.shave),
		// wrong status
		newBooking(f, day(2026, time.March, 11, 9), bookingdomain.StatusCancelled, f.haircut),
		newBooking(f, day(2026, time.March, 12, 9), bookingdomain.StatusConfirmed, f.haircut),
		// end of the window is exclusive
		newBooking(f, day(2027, time.January, 1, 0), bookingdomain.StatusCompleted, f.haircut),
	}

	other := newBooking(f, day(2026, time.March, 20, 9), bookingdomain.StatusCompleted, f.haircut)
	other.EmployeeID = &f.barber2.ID
	bookings = append(bookings, other)

	for _, b := range bookings {
		require.NoError(t, repo.CreateBooking(ctx, b))
	}
}

func sumMonthly(rows []domain.MonthlyRevenue) (decimal.Decimal, int) {
	total, count := decimal.Zero, 0
	for _, r := range rows {
		total = total.Add(r.Total)
		count += r.Count
	}
	return total, count
}

func sumByService(rows []domain.ServiceRevenue) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	return total
}

func TestReportRepository_MonthlyMatchesByService(t *testing.T) {
	f := seed(t)
	seedRevenue(t, f)
	repo := repository.NewReportGormRepository(gdb)
	ctx := context.Background()

	q := domain.Query{
		Start: day(2026, time.January, 1, 0),
		End:   day(2027, time.January, 1, 0),
	}

	rows, err := repo.ListRevenueBookings(ctx, q)
	require.NoError(t, err)
	lines, err := repo.ListRevenueServiceLines(ctx, q)
	require.NoError(t, err)

	monthly := domain.AggregateMonthly(rows, time.UTC)
	require.Len(t, monthly, 3)
	assert.Equal(t, "01/2026", monthly[0].Month)
	assert.Equal(t, "03/2026", monthly[1].Month)
	assert.Equal(t, 2, monthly[1].Count)
	assert.Equal(t, "04/2026", monthly[2].Month)

	total, count := sumMonthly(monthly)
	assert.Equal(t, 4, count)
	// 100k + 150k + 50k + 100k (second barber)
	assert.True(t, decimal.NewFromInt(400000).Equal(total), total.String())

	byService := domain.AggregateByService(lines)
	require.Len(t, byService, 2)
	assert.True(t, total.Equal(sumByService(byService)))
	for _, s := range byService {
		switch s.ServiceID {
		case f.haircut.ID:
			assert.Equal(t, "Haircut", s.Service)
			assert.Equal(t, 3, s.Count)
		case f.shave.ID:
			assert.Equal(t, "Shave", s.Service)
			assert.Equal(t, 2, s.Count)
		default:
			t.Fatalf("unexpected service %d", s.ServiceID)
		}
	}
}

func TestReportRepository_EmployeeFilter(t *testing.T) {
	f := seed(t)
	seedRevenue(t, f)
	repo := repository.NewReportGormRepository(gdb)
	ctx := context.Background()

	q := domain.Query{
		Start:      day(2026, time.January, 1, 0),
		End:        day(2027, time.January, 1, 0),
		EmployeeID: &f.barber2.ID,
	}

	rows, err := repo.ListRevenueBookings(ctx, q)
	require.NoError(t, err)
	lines, err := repo.ListRevenueServiceLines(ctx, q)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	require.Len(t, lines, 1)
	assert.True(t, rows[0].TotalPrice.Equal(lines[0].Price))
	assert.Equal(t, f.haircut.ID, lines[0].ServiceID)
}
