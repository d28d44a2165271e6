package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/validators"
)

type GymHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewGymHandler(db *gorm.DB, audit *audit.Dispatcher) *GymHandler {
	return &GymHandler{db: db, audit: audit}
}

type UpdateGymRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Email       *string `json:"email" binding:"omitempty,email,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	OpeningTime *string `json:"openingTime"`
	ClosingTime *string `json:"closingTime"`
	Timezone    *string `json:"timezone"`
	Active      *bool   `json:"active"`
}

func (h *GymHandler) Get(c *gin.Context) {
	gym, err := defaultGym(h.db.WithContext(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, gym)
}

func (h *GymHandler) Update(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	gym, err := defaultGym(db)
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid gym settings.")
		return
	}

	if req.Timezone != nil {
		if !validators.IsTimezone(*req.Timezone) {
			badRequest(c, "Unknown timezone.")
			return
		}
		gym.Timezone = *req.Timezone
	}
	if req.OpeningTime != nil {
		if !validators.IsClock(*req.OpeningTime, false) {
			badRequest(c, "openingTime must be HH:MM.")
			return
		}
		gym.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		if !validators.IsClock(*req.ClosingTime, true) {
			badRequest(c, "closingTime must be HH:MM.")
			return
		}
		gym.ClosingTime = *req.ClosingTime
	}
	if gym.OpeningTime != "" && gym.ClosingTime != "" && !validators.IsWindow(gym.OpeningTime, gym.ClosingTime) {
		badRequest(c, "openingTime must be before closingTime.")
		return
	}

	if req.Name != nil {
		gym.Name = *req.Name
	}
	if req.Address != nil {
		gym.Address = *req.Address
	}
	if req.Phone != nil {
		gym.Phone = *req.Phone
	}
	if req.Email != nil {
		gym.Email = *req.Email
	}
	if req.Description != nil {
		gym.Description = *req.Description
	}
	if req.Active != nil {
		gym.Active = *req.Active
	}

	if err := db.Save(gym).Error; err != nil {
		respondError(c, httperr.Storage("update gym", err))
		return
	}

	writeAudit(h.audit, gym.ID, middleware.UserID(c), "gym_updated", "gym_center", &gym.ID, nil)
	httpresp.OK(c, gym)
}
