package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	bookingdomain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/report"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// revenueScope restricts a query on bookings (aliased b) to revenue
// countable rows of the query window.
func revenueScope(q domain.Query) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where(
			"b.status IN ? AND b.appointment_date >= ? AND b.appointment_date < ?",
			bookingdomain.RevenueStatuses, q.Start, q.End,
		)
		if q.EmployeeID != nil {
			tx = tx.Where("b.employee_id = ?", *q.EmployeeID)
		}
		if q.BranchID != nil {
			tx = tx.Where("b.branch_id = ?", *q.BranchID)
		}
		return tx
	}
}

func (r *ReportGormRepository) ListRevenueBookings(
	ctx context.Context,
	q domain.Query,
) ([]domain.BookingRevenue, error) {

	var rows []domain.BookingRevenue
	if err := r.db.WithContext(ctx).
		Table("bookings b").
		Select("b.appointment_date, b.total_price").
		Scopes(revenueScope(q)).
		Order("b.appointment_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportGormRepository) ListRevenueServiceLines(
	ctx context.Context,
	q domain.Query,
) ([]domain.ServiceLine, error) {

	var rows []domain.ServiceLine
	if err := r.db.WithContext(ctx).
		Table("booking_services bs").
		Select("bs.service_id, s.name AS service_name, bs.service_price AS price").
		Joins("JOIN bookings b ON b.id = bs.booking_id").
		Joins("JOIN services s ON s.id = bs.service_id").
		Scopes(revenueScope(q)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportGormRepository) DaySnapshot(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (domain.DaySnapshot, error) {

	var snap domain.DaySnapshot
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Booking{}).
		Where("status <> ? AND appointment_date >= ? AND appointment_date < ?",
			string(bookingdomain.StatusCancelled), start, end).
		Count(&snap.Bookings).Error; err != nil {
		return snap, err
	}

	var revenue struct {
		Revenue         decimal.Decimal
		RevenueBookings int64
		DurationMinutes int64
	}
	if err := db.Model(&models.Booking{}).
		Select(
			"COALESCE(SUM(total_price), 0) AS revenue, " +
				"COUNT(*) AS revenue_bookings, " +
				"COALESCE(SUM(estimated_duration), 0) AS duration_minutes",
		).
		Where("status IN ? AND appointment_date >= ? AND appointment_date < ?",
			bookingdomain.RevenueStatuses, start, end).
		Scan(&revenue).Error; err != nil {
		return snap, err
	}
	snap.Revenue = revenue.Revenue
	snap.RevenueBookings = revenue.RevenueBookings
	snap.DurationMinutes = revenue.DurationMinutes

	if err := db.Model(&models.User{}).
		Where("role = ? AND created_at >= ? AND created_at < ?", models.RoleCustomer, start, end).
		Count(&snap.NewCustomers).Error; err != nil {
		return snap, err
	}

	return snap, nil
}

func (r *ReportGormRepository) ListActivities(
	ctx context.Context,
	f domain.ActivityFilter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Compile-time check
var _ domain.Repository = (*ReportGormRepository)(nil)
