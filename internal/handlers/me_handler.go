package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe echoes the token identity plus the trainer or member record linked
// to it, when one exists.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	role := middleware.UserRole(c)
	db := h.db.WithContext(c.Request.Context())

	resp := gin.H{
		"userId": userID,
		"role":   role,
	}

	switch role {
	case models.RoleTrainer:
		var trainer models.Trainer
		err := db.Preload("Services").Where("user_id = ?", userID).First(&trainer).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, httperr.Storage("get trainer", err))
			return
		}
		if err == nil {
			resp["trainer"] = trainer
		}
	case models.RoleMember:
		var profile models.MemberProfile
		err := db.Where("user_id = ?", userID).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, httperr.Storage("get profile", err))
			return
		}
		if err == nil {
			resp["profile"] = profile
		}
	}

	c.JSON(http.StatusOK, resp)
}
