package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/booking"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ListBookingsOutput struct {
	Bookings []models.Booking
	Total    int64
	Page     int
	Size     int
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	actor Actor,
	filter domain.ListFilter,
) (*ListBookingsOutput, error) {

	if actor.IsCustomer() {
		id := actor.UserID
		filter.CustomerID = &id
	}

	if err := filter.Normalize(); err != nil {
		return nil, err
	}

	bookings, total, err := uc.repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListBookingsOutput{
		Bookings: bookings,
		Total:    total,
		Page:     filter.Page,
		Size:     filter.Size,
	}, nil
}
