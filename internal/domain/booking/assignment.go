package booking

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Candidate is a branch barber together with the active bookings around
// the requested slot.
type Candidate struct {
	Employee models.User
	Bookings []models.Booking
}

func (c Candidate) isFree(start, end time.Time) bool {
	for _, b := range c.Bookings {
		if Overlaps(start, end, b.AppointmentDate, b.EndTime()) {
			return false
		}
	}
	return true
}

func (c Candidate) loadOn(day time.Time) int {
	y, m, d := day.Date()
	n := 0
	for _, b := range c.Bookings {
		by, bm, bd := b.AppointmentDate.In(day.Location()).Date()
		if by == y && bm == m && bd == d {
			n++
		}
	}
	return n
}

// PickEmployee chooses the barber for [start, end). Available barbers with a
// free slot win over barbers flagged unavailable; within a tier the one with
// the fewest bookings that day and then the lowest id is picked. It returns
// nil when every candidate is busy or inactive.
func PickEmployee(candidates []Candidate, start, end time.Time) *models.User {
	type scored struct {
		user models.User
		tier int
		load int
	}

	var pool []scored
	for _, c := range candidates {
		if c.Employee.Role != models.RoleBarber || c.Employee.Status != models.UserStatusActive {
			continue
		}
		if !c.isFree(start, end) {
			continue
		}
		tier := 1
		if c.Employee.AvailabilityStatus == models.AvailabilityAvailable {
			tier = 0
		}
		pool = append(pool, scored{user: c.Employee, tier: tier, load: c.loadOn(start)})
	}

	if len(pool) == 0 {
		return nil
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].tier != pool[j].tier {
			return pool[i].tier < pool[j].tier
		}
		if pool[i].load != pool[j].load {
			return pool[i].load < pool[j].load
		}
		return pool[i].user.ID < pool[j].user.ID
	})

	picked := pool[0].user
	return &picked
}
