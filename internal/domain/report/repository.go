package report

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ActivityFilter struct {
	Page   int
	Limit  int
	Action string
	Entity string
}

type Repository interface {
	// ListRevenueBookings returns completed and successful bookings whose
	// appointment date falls in the query window.
	ListRevenueBookings(
		ctx context.Context,
		q Query,
	) ([]BookingRevenue, error)

	ListRevenueServiceLines(
		ctx context.Context,
		q Query,
	) ([]ServiceLine, error)

	DaySnapshot(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (DaySnapshot, error)

	ListActivities(
		ctx context.Context,
		f ActivityFilter,
	) ([]models.AuditLog, int64, error)
}

// Cache stores report results as JSON. A miss returns false and no error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }
