package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Branch / staff
// --------------------------------------------------

func (r *BookingGormRepository) GetBranch(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &branch, nil
}

func (r *BookingGormRepository) IsEmployeeOfBranch(
	ctx context.Context,
	employeeID uint,
	branchID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BranchEmployee{}).
		Where("branch_id = ? AND employee_id = ? AND active = ?", branchID, employeeID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ListBranchBarbers(
	ctx context.Context,
	branchID uint,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN branch_employees be ON be.employee_id = users.id").
		Where(
			"be.branch_id = ? AND be.active = ? AND users.role = ? AND users.status = ?",
			branchID, true, models.RoleBarber, models.UserStatusActive,
		).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *BookingGormRepository) FindUserByPhone(
	ctx context.Context,
	phone string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *BookingGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if len(ids) == 0 {
		return services, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return err
		}
		if len(b.Services) == 0 {
			return nil
		}
		for i := range b.Services {
			b.Services[i].BookingID = b.ID
		}
		return tx.Omit(clause.Associations).Create(&b.Services).Error
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Employee").
		Preload("Branch").
		Preload("Services.Service").
		First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(b).Error
}

func (r *BookingGormRepository) ReplaceBookingServices(
	ctx context.Context,
	bookingID uint,
	lines []models.BookingService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", bookingID).
			Delete(&models.BookingService{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].BookingID = bookingID
		}
		return tx.Omit(clause.Associations).Create(&lines).Error
	})
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).
			Delete(&models.BookingService{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if f.CustomerID != nil {
		q = q.Where("bookings.customer_id = ?", *f.CustomerID)
	}
	if f.EmployeeID != nil {
		q = q.Where("bookings.employee_id = ?", *f.EmployeeID)
	}
	if f.BranchID != nil {
		q = q.Where("bookings.branch_id = ?", *f.BranchID)
	}
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.DateFrom != nil {
		q = q.Where("bookings.appointment_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("bookings.appointment_date < ?", *f.DateTo)
	}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		q = q.Joins("JOIN users kc ON kc.id = bookings.customer_id").
			Where("kc.name ILIKE ? OR kc.phone LIKE ? OR bookings.notes ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	if err := q.
		Preload("Customer").
		Preload("Employee").
		Preload("Branch").
		Preload("Services.Service").
		Order(f.OrderClause("bookings")).
		Limit(f.Size).
		Offset(f.Offset()).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListActiveEmployeeBookings locks the employee until the surrounding
// transaction ends, so the caller's overlap check and insert are atomic.
func (r *BookingGormRepository) ListActiveEmployeeBookings(
	ctx context.Context,
	employeeID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	db := r.db.WithContext(ctx)

	var employee models.User
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&employee, employeeID).Error; err != nil {
		return nil, notFound(err)
	}

	var bookings []models.Booking
	if err := db.
		Where(
			"employee_id = ? AND status IN ? AND appointment_date >= ? AND appointment_date < ?",
			employeeID, domain.ActiveStatuses, from, to,
		).
		Order("appointment_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
