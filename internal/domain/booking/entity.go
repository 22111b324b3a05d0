package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves the booking to next. Entering completed stamps the
// check-in (when missing) and the check-out derived from the duration.
func Transition(b *models.Booking, next Status, now time.Time) error {
	current := Status(b.Status)
	if err := CanTransition(current, next); err != nil {
		return err
	}

	if next == StatusCompleted {
		if b.CheckInTime == nil {
			in := now
			b.CheckInTime = &in
		}
		if b.CheckOutTime == nil {
			out := b.CheckInTime.Add(time.Duration(b.EstimatedDuration) * time.Minute)
			b.CheckOutTime = &out
		}
	}

	b.Status = string(next)
	return nil
}

// ApplyServices replaces the booking lines with fresh price snapshots and
// recomputes the totals.
func ApplyServices(b *models.Booking, services []models.Service) {
	total := decimal.Zero
	duration := 0
	lines := make([]models.BookingService, 0, len(services))

	for _, s := range services {
		total = total.Add(s.Price)
		duration += s.EstimatedTime
		lines = append(lines, models.BookingService{
			BookingID:    b.ID,
			ServiceID:    s.ID,
			Service:      s,
			ServicePrice: s.Price,
		})
	}

	b.TotalPrice = total
	b.EstimatedDuration = duration
	b.Services = lines
}

// Rate records the customer's review once the service is finished.
func Rate(b *models.Booking, rating int, review string) error {
	if !Status(b.Status).IsRevenueCountable() {
		return httperr.ErrInvalidState("booking_not_finished", "only finished bookings can be rated")
	}
	if b.Rating != nil {
		return httperr.ErrInvalidState("booking_already_rated", "booking already has a rating")
	}
	if rating < 1 || rating > 5 {
		return httperr.ErrValidation("invalid_rating", "rating must be between 1 and 5")
	}

	b.Rating = &rating
	if review != "" {
		b.Review = &review
	}
	return nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// UniqueIDs drops zero and repeated ids, keeping the first occurrence.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
