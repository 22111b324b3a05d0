package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type ServiceStepRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Detail string `json:"detail" binding:"max=255"`
}

type CreateServiceRequest struct {
	Name          string               `json:"name" binding:"required,max=100"`
	Description   string               `json:"description" binding:"max=255"`
	Price         decimal.Decimal      `json:"price"`
	EstimatedTime int                  `json:"estimated_time" binding:"required,min=1"`
	Steps         []ServiceStepRequest `json:"steps" binding:"dive"`
}

type UpdateServiceRequest struct {
	Name          *string               `json:"name,omitempty" binding:"omitempty,max=100"`
	Description   *string               `json:"description,omitempty" binding:"omitempty,max=255"`
	Price         *decimal.Decimal      `json:"price,omitempty"`
	EstimatedTime *int                  `json:"estimated_time,omitempty" binding:"omitempty,min=1"`
	Active        *bool                 `json:"active,omitempty"`
	Steps         *[]ServiceStepRequest `json:"steps,omitempty"`
}

// buildSteps numbers steps 1..n in the order they were sent.
func buildSteps(serviceID uint, reqs []ServiceStepRequest) []models.ServiceStep {
	steps := make([]models.ServiceStep, 0, len(reqs))
	for i, s := range reqs {
		steps = append(steps, models.ServiceStep{
			ServiceID: serviceID,
			StepOrder: i + 1,
			Name:      strings.TrimSpace(s.Name),
			Detail:    s.Detail,
		})
	}
	return steps
}

func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_order ASC")
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Scopes(activeScope(c.Query("active")), keywordScope(c.Query("query"))).
		Preload("Steps", orderedSteps).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc, err := h.find(c, h.db, id)
	if err != nil {
		respondLookup(c, err, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}
	if !req.Price.IsPositive() {
		httperr.BadRequest(c, "invalid_price", "Price must be greater than zero.")
		return
	}

	svc := models.Service{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price.Round(2),
		EstimatedTime: req.EstimatedTime,
		Active:        true,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Steps").Create(&svc).Error; err != nil {
			return err
		}
		svc.Steps = buildSteps(svc.ID, req.Steps)
		if len(svc.Steps) == 0 {
			return nil
		}
		return tx.Create(&svc.Steps).Error
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}
	if req.Price != nil && !req.Price.IsPositive() {
		httperr.BadRequest(c, "invalid_price", "Price must be greater than zero.")
		return
	}

	var svc *models.Service
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		if svc, err = h.find(c, tx, id); err != nil {
			return err
		}

		if req.Name != nil {
			svc.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			svc.Description = *req.Description
		}
		if req.Price != nil {
			svc.Price = req.Price.Round(2)
		}
		if req.EstimatedTime != nil {
			svc.EstimatedTime = *req.EstimatedTime
		}
		if req.Active != nil {
			svc.Active = *req.Active
		}

		if err := tx.Omit("Steps").Save(svc).Error; err != nil {
			return err
		}

		if req.Steps == nil {
			return nil
		}
		if err := tx.Where("service_id = ?", svc.ID).Delete(&models.ServiceStep{}).Error; err != nil {
			return err
		}
		svc.Steps = buildSteps(svc.ID, *req.Steps)
		if len(svc.Steps) == 0 {
			return nil
		}
		return tx.Create(&svc.Steps).Error
	})
	if err != nil {
		respondLookup(c, err, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete removes a service that no booking references. Referenced services
// answer 409 and should be deactivated instead.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) find(c *gin.Context, db *gorm.DB, id uint) (*models.Service, error) {
	var svc models.Service
	if err := db.WithContext(c.Request.Context()).
		Preload("Steps", orderedSteps).
		First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// respondLookup answers 404 for a missing row and defers everything else
// to httperr.Respond.
func respondLookup(c *gin.Context, err error, code, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, code, msg)
		return
	}
	httperr.Respond(c, err)
}
