package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"required,vnphone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin receptionist barber"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type UpdateAvailabilityRequest struct {
	AvailabilityStatus string `json:"availability_status" binding:"required,oneof=available unavailable"`
}

// --------- Handlers ---------

// List filters users by role, status and a keyword over name, phone and email.
func (h *UserHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	size, ok := queryInt(c, "size")
	if !ok {
		return
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defaultUserPageSize
	}
	if size > maxUserPageSize {
		size = maxUserPageSize
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})

	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}
	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("status = ?", status)
	}
	if kw := strings.TrimSpace(c.Query("keyword")); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var users []models.User
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewUserDTOs(users), total, page, size)
}

// Get is open to staff and to the user themself.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	callerID, role := middleware.CurrentUser(c)
	if !models.IsStaffRole(role) && callerID != id {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		respondLookup(c, err, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, dto.NewUserDTO(&user))
}

func (h *UserHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid user data.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	user := models.User{
		Name:               strings.TrimSpace(req.Name),
		Phone:              validators.CanonicalPhone(req.Phone),
		PasswordHash:       string(hashed),
		Role:               req.Role,
		Status:             models.UserStatusActive,
		AvailabilityStatus: models.AvailabilityAvailable,
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" {
		user.Email = &email
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewUserDTO(&user))
}

func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status must be active or inactive.")
		return
	}

	callerID, _ := middleware.CurrentUser(c)
	if callerID == id && req.Status == models.UserStatusInactive {
		httperr.BadRequest(c, "cannot_deactivate_self", "You cannot deactivate your own account.")
		return
	}

	h.updateColumn(c, id, "status", req.Status)
}

// UpdateAvailability is allowed to admins and to a barber for themself.
func (h *UserHandler) UpdateAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	callerID, role := middleware.CurrentUser(c)
	if role != models.RoleAdmin && !(role == models.RoleBarber && callerID == id) {
		httperr.Forbidden(c, "forbidden", "You are not allowed to do this.")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "availability_status must be available or unavailable.")
		return
	}

	h.updateColumn(c, id, "availability_status", req.AvailabilityStatus)
}

func (h *UserHandler) updateColumn(c *gin.Context, id uint, column string, value string) {
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, id).Error; err != nil {
		respondLookup(c, err, "user_not_found", "User not found.")
		return
	}

	if column == "availability_status" && user.Role != models.RoleBarber {
		httperr.BadRequest(c, "not_barber", "Availability applies to barbers only.")
		return
	}

	if err := h.db.WithContext(ctx).Model(&user).Update(column, value).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(&user))
}
