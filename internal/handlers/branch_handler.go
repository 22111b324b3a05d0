package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type BranchHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewBranchHandler(db *gorm.DB, loc *time.Location) *BranchHandler {
	return &BranchHandler{db: db, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"max=255"`
	Phone   string `json:"phone" binding:"omitempty,vnphone"`
}

type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Address *string `json:"address,omitempty" binding:"omitempty,max=255"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,vnphone"`
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

type AddBranchEmployeeRequest struct {
	EmployeeID   uint   `json:"employee_id" binding:"required,gt=0"`
	IsMainBranch bool   `json:"is_main_branch"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD, defaults to today
}

// ======================================================
// BRANCHES
// ======================================================

func (h *BranchHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	switch status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status {
	case "all":
	case "":
		q = q.Where("status = ?", models.BranchStatusActive)
	default:
		q = q.Where("status = ?", status)
	}

	var branches []models.Branch
	if err := q.Order("id ASC").Find(&branches).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, branches)
}

func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var branch models.Branch
	if err := h.db.WithContext(c.Request.Context()).First(&branch, id).Error; err != nil {
		respondLookup(c, err, "branch_not_found", "Branch not found.")
		return
	}

	httpresp.OK(c, branch)
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid branch data.")
		return
	}

	branch := models.Branch{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Phone:   req.Phone,
		Status:  models.BranchStatusActive,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&branch).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid branch data.")
		return
	}

	ctx := c.Request.Context()

	var branch models.Branch
	if err := h.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		respondLookup(c, err, "branch_not_found", "Branch not found.")
		return
	}

	if req.Name != nil {
		branch.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Status != nil {
		branch.Status = *req.Status
	}

	if err := h.db.WithContext(ctx).Omit("Employees").Save(&branch).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, branch)
}

// ======================================================
// EMPLOYEES
// ======================================================

func (h *BranchHandler) ListEmployees(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var branch models.Branch
	if err := h.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		respondLookup(c, err, "branch_not_found", "Branch not found.")
		return
	}

	var rows []models.BranchEmployee
	if err := h.db.WithContext(ctx).
		Preload("Employee").
		Where("branch_id = ? AND active = ?", id, true).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

// AddEmployee links a staff user to the branch, reactivating an earlier
// link when one exists. Marking it as the main branch clears the flag on
// the employee's other branches in the same transaction.
func (h *BranchHandler) AddEmployee(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddBranchEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid employee data.")
		return
	}

	start := timezone.StartOfDay(time.Now().In(h.loc))
	if req.StartDate != "" {
		d, err := timezone.ParseDate(req.StartDate, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "start_date must be YYYY-MM-DD.")
			return
		}
		start = d
	}

	var link models.BranchEmployee
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, branchID).Error; err != nil {
			return notFoundAs(err, "branch_not_found", "Branch not found.")
		}

		var employee models.User
		if err := tx.First(&employee, req.EmployeeID).Error; err != nil {
			return notFoundAs(err, "employee_not_found", "Employee not found.")
		}
		if !employee.IsStaff() {
			return httperr.ErrValidation("not_staff", "Only staff users can be assigned to a branch.")
		}

		if req.IsMainBranch {
			if err := tx.Model(&models.BranchEmployee{}).
				Where("employee_id = ? AND branch_id <> ?", employee.ID, branchID).
				Update("is_main_branch", false).Error; err != nil {
				return err
			}
		}

		err := tx.Where("branch_id = ? AND employee_id = ?", branchID, employee.ID).First(&link).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			link = models.BranchEmployee{
				BranchID:     branchID,
				EmployeeID:   employee.ID,
				IsMainBranch: req.IsMainBranch,
				StartDate:    start,
				Active:       true,
			}
			if err := tx.Omit("Employee").Create(&link).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			link.IsMainBranch = req.IsMainBranch
			link.StartDate = start
			link.Active = true
			if err := tx.Omit("Employee").Save(&link).Error; err != nil {
				return err
			}
		}

		link.Employee = employee
		return nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, link)
}

// RemoveEmployee deactivates the link. Past bookings keep their employee.
func (h *BranchHandler) RemoveEmployee(c *gin.Context) {
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	employeeID, ok := pathID(c, "employee_id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.BranchEmployee{}).
		Where("branch_id = ? AND employee_id = ? AND active = ?", branchID, employeeID, true).
		Updates(map[string]any{"active": false, "is_main_branch": false})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "branch_employee_not_found", "Employee is not assigned to this branch.")
		return
	}

	c.Status(http.StatusNoContent)
}

func notFoundAs(err error, code, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, msg)
	}
	return err
}
