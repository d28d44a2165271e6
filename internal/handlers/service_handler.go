package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

const (
	minServiceMinutes = 15
	maxServiceMinutes = 240
)

var maxServicePrice = decimal.NewFromInt(10000)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required,max=100"`
	Description     string          `json:"description" binding:"max=500"`
	Category        string          `json:"category" binding:"max=50"`
	DurationMinutes int             `json:"durationMinutes" binding:"required"`
	Price           decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Description     *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Category        *string          `json:"category,omitempty" binding:"omitempty,max=50"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

func validDuration(minutes int) bool {
	return minutes >= minServiceMinutes && minutes <= maxServiceMinutes
}

func validPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(maxServicePrice)
}

// --------- Handlers ---------

// List is the admin view: inactive services included, optional ?active=.
func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		respondError(c, httperr.Storage("list services", err))
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid service.")
		return
	}
	if !validDuration(req.DurationMinutes) {
		badRequest(c, "durationMinutes must be between 15 and 240.")
		return
	}
	if !validPrice(req.Price) {
		badRequest(c, "price must be between 0 and 10000.")
		return
	}

	gym, err := defaultGym(h.db.WithContext(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}

	service := models.Service{
		GymCenterID:     gym.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		respondError(c, httperr.Storage("create service", err))
		return
	}

	writeAudit(h.audit, gym.ID, middleware.UserID(c), "service_created", "service", &service.ID, nil)
	httpresp.Created(c, service)
}

// Update edits catalog fields. Booked appointments keep the duration and
// price they were created with.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid service id.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		respondError(c, notFoundOr("get service", err))
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid service.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.DurationMinutes != nil {
		if !validDuration(*req.DurationMinutes) {
			badRequest(c, "durationMinutes must be between 15 and 240.")
			return
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if !validPrice(*req.Price) {
			badRequest(c, "price must be between 0 and 10000.")
			return
		}
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := db.Save(&service).Error; err != nil {
		respondError(c, httperr.Storage("update service", err))
		return
	}

	writeAudit(h.audit, service.GymCenterID, middleware.UserID(c), "service_updated", "service", &service.ID, nil)
	httpresp.OK(c, service)
}

// Deactivate hides the service from the catalog; it is never deleted so
// existing appointments keep their reference.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid service id.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		respondError(c, notFoundOr("get service", err))
		return
	}

	if err := db.Model(&service).Update("active", false).Error; err != nil {
		respondError(c, httperr.Storage("deactivate service", err))
		return
	}

	writeAudit(h.audit, service.GymCenterID, middleware.UserID(c), "service_deactivated", "service", &service.ID, nil)
	httpresp.OK(c, service)
}
