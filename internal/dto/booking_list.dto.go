package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// BookingListDTO is the compact row returned by the booking list.
type BookingListDTO struct {
	ID                uint            `json:"id"`
	AppointmentDate   time.Time       `json:"appointment_date"`
	EndTime           time.Time       `json:"end_time"`
	Status            string          `json:"status"`
	CustomerID        uint            `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerPhone     string          `json:"customer_phone"`
	EmployeeID        *uint           `json:"employee_id"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	BranchID          uint            `json:"branch_id"`
	BranchName        string          `json:"branch_name"`
	Services          []string        `json:"services"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	EstimatedDuration int             `json:"estimated_duration"`
	Rating            *int            `json:"rating"`
}

func NewBookingListDTO(b *models.Booking) BookingListDTO {
	out := BookingListDTO{
		ID:                b.ID,
		AppointmentDate:   b.AppointmentDate,
		EndTime:           b.EndTime(),
		Status:            b.Status,
		CustomerID:        b.CustomerID,
		CustomerName:      b.Customer.Name,
		CustomerPhone:     b.Customer.Phone,
		EmployeeID:        b.EmployeeID,
		BranchID:          b.BranchID,
		BranchName:        b.Branch.Name,
		Services:          make([]string, 0, len(b.Services)),
		TotalPrice:        b.TotalPrice,
		EstimatedDuration: b.EstimatedDuration,
		Rating:            b.Rating,
	}
	if b.Employee != nil {
		out.EmployeeName = b.Employee.Name
	}
	for _, s := range b.Services {
		out.Services = append(out.Services, s.Service.Name)
	}
	return out
}

func NewBookingListDTOs(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingListDTO(&bookings[i]))
	}
	return out
}
