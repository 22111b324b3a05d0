package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type MeResponse struct {
	User     dto.UserDTO     `json:"user"`
	Branches []models.Branch `json:"branches,omitempty"`
}

// GetMe returns the caller and, for staff, the branches they work at.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "User no longer exists.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	resp := MeResponse{User: dto.NewUserDTO(&user)}

	if user.IsStaff() {
		if err := h.db.WithContext(ctx).
			Joins("JOIN branch_employees be ON be.branch_id = branches.id").
			Where("be.employee_id = ? AND be.active = ?", user.ID, true).
			Order("be.is_main_branch DESC, branches.id ASC").
			Find(&resp.Branches).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	httpresp.OK(c, resp)
}
