package models

import "time"

const (
	BranchStatusActive   = "active"
	BranchStatusInactive = "inactive"
)

type Branch struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`
	Status  string `gorm:"size:20;default:'active'" json:"status"`

	Employees []BranchEmployee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"employees,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchEmployee links a staff user to a branch. An employee has at most
// one active row with IsMainBranch set.
type BranchEmployee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID   uint `gorm:"uniqueIndex:idx_branch_employee" json:"branch_id"`
	EmployeeID uint `gorm:"uniqueIndex:idx_branch_employee;index" json:"employee_id"`
	Employee   User `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"employee"`

	IsMainBranch bool      `gorm:"default:false" json:"is_main_branch"`
	StartDate    time.Time `json:"start_date"`
	Active       bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
