package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	// EstimatedTime is expressed in minutes.
	EstimatedTime int  `gorm:"not null" json:"estimated_time"`
	Active        bool `gorm:"default:true" json:"active"`

	Steps []ServiceStep `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"steps,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceStep struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID uint   `gorm:"uniqueIndex:idx_service_step_order" json:"service_id"`
	StepOrder int    `gorm:"uniqueIndex:idx_service_step_order" json:"step_order"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Detail    string `gorm:"size:255" json:"detail"`
}
