package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentDate time.Time `gorm:"index;not null" json:"appointment_date"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`

	EmployeeID *uint `gorm:"index" json:"employee_id"`
	Employee   *User `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee,omitempty"`

	BranchID uint   `gorm:"index" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"branch"`

	Status            string          `gorm:"size:20;default:'pending';index" json:"status"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	EstimatedDuration int             `gorm:"not null" json:"estimated_duration"`

	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Rating       *int       `json:"rating"`
	Review       *string    `gorm:"type:text" json:"review"`
	Notes        string     `gorm:"size:255" json:"notes"`

	Services []BookingService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime is the expected end of the appointment window.
func (b *Booking) EndTime() time.Time {
	return b.AppointmentDate.Add(time.Duration(b.EstimatedDuration) * time.Minute)
}

// BookingService pins the price of a service at the moment it was booked.
type BookingService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ServicePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"service_price"`
}
