package booking_test

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// memRepo keeps rows by value so a failed transaction can be rolled back
// by restoring the previous maps.
type memRepo struct {
	users    map[uint]models.User
	branches map[uint]models.Branch
	members  map[[2]uint]bool // {branchID, employeeID}
	services map[uint]models.Service
	bookings map[uint]models.Booking

	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:    map[uint]models.User{},
		branches: map[uint]models.Branch{},
		members:  map[[2]uint]bool{},
		services: map[uint]models.Service{},
		bookings: map[uint]models.Booking{},
		nextID:   1000,
	}
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (r *memRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	users, bookings := copyMap(r.users), copyMap(r.bookings)
	next := r.nextID

	if err := fn(r); err != nil {
		r.users, r.bookings, r.nextID = users, bookings, next
		return err
	}
	return nil
}

func (r *memRepo) GetBranch(_ context.Context, id uint) (*models.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) IsEmployeeOfBranch(_ context.Context, employeeID, branchID uint) (bool, error) {
	return r.members[[2]uint{branchID, employeeID}], nil
}

func (r *memRepo) ListBranchBarbers(_ context.Context, branchID uint) ([]models.User, error) {
	var out []models.User
	for key := range r.members {
		if key[0] != branchID {
			continue
		}
		u := r.users[key[1]]
		if u.Role == models.RoleBarber && u.Status == models.UserStatusActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) FindUserByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) CreateUser(_ context.Context, u *models.User) error {
	u.ID = r.id()
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) ListServicesByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	b.ID = r.id()
	b.CreatedAt = time.Now()
	for i := range b.Services {
		b.Services[i].ID = r.id()
		b.Services[i].BookingID = b.ID
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Services = append([]models.BookingService(nil), b.Services...)
	return &b, nil
}

func (r *memRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	cur, ok := r.bookings[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := cur.Services
	cur = *b
	cur.Services = lines
	r.bookings[b.ID] = cur
	return nil
}

func (r *memRepo) ReplaceBookingServices(_ context.Context, bookingID uint, lines []models.BookingService) error {
	cur := r.bookings[bookingID]
	cur.Services = nil
	for _, l := range lines {
		l.ID = r.id()
		l.BookingID = bookingID
		cur.Services = append(cur.Services, l)
	}
	r.bookings[bookingID] = cur
	return nil
}

func (r *memRepo) DeleteBooking(_ context.Context, id uint) error {
	delete(r.bookings, id)
	return nil
}

func (r *memRepo) ListBookings(_ context.Context, f domain.ListFilter) ([]models.Booking, int64, error) {
	var all []models.Booking
	for _, b := range r.bookings {
		if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
			continue
		}
		if f.BranchID != nil && b.BranchID != *f.BranchID {
			continue
		}
		if f.EmployeeID != nil && (b.EmployeeID == nil || *b.EmployeeID != *f.EmployeeID) {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := f.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + f.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memRepo) ListActiveEmployeeBookings(_ context.Context, employeeID uint, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.EmployeeID == nil || *b.EmployeeID != employeeID {
			continue
		}
		if !domain.Status(b.Status).IsActive() {
			continue
		}
		if b.AppointmentDate.Before(from) || !b.AppointmentDate.Before(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)
