package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

var bodyTypes = map[string]bool{
	"":          true,
	"ectomorph": true,
	"mesomorph": true,
	"endomorph": true,
}

type MemberProfileHandler struct {
	db *gorm.DB
}

func NewMemberProfileHandler(db *gorm.DB) *MemberProfileHandler {
	return &MemberProfileHandler{db: db}
}

type UpdateProfileRequest struct {
	FirstName        string              `json:"firstName" binding:"max=100"`
	LastName         string              `json:"lastName" binding:"max=100"`
	DateOfBirth      string              `json:"dateOfBirth"`
	HeightCm         *int                `json:"heightCm" binding:"omitempty,min=50,max=250"`
	WeightKg         decimal.NullDecimal `json:"weightKg"`
	BodyType         string              `json:"bodyType" binding:"max=20"`
	FitnessGoal      string              `json:"fitnessGoal" binding:"max=200"`
	HealthConditions string              `json:"healthConditions" binding:"max=500"`
}

// Get returns the caller's profile; a member without one gets an empty
// profile rather than 404.
func (h *MemberProfileHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	var profile models.MemberProfile
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.MemberProfile{UserID: userID}
	case err != nil:
		respondError(c, httperr.Storage("get profile", err))
		return
	}

	httpresp.OK(c, profile)
}

// Put creates or replaces the caller's profile.
func (h *MemberProfileHandler) Put(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid profile.")
		return
	}
	if !bodyTypes[req.BodyType] {
		badRequest(c, "bodyType must be ectomorph, mesomorph or endomorph.")
		return
	}
	if req.WeightKg.Valid && (!req.WeightKg.Decimal.IsPositive() || req.WeightKg.Decimal.GreaterThan(decimal.NewFromInt(500))) {
		badRequest(c, "weightKg must be between 0 and 500.")
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		d, err := domain.ParseDate(req.DateOfBirth)
		if err != nil || d.After(time.Now()) {
			httperr.BadRequest(c, CodeInvalidDate, "dateOfBirth must be a past YYYY-MM-DD date.")
			return
		}
		dob = &d
	}

	db := h.db.WithContext(c.Request.Context())

	var profile models.MemberProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, httperr.Storage("get profile", err))
		return
	}

	profile.UserID = userID
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.DateOfBirth = dob
	profile.HeightCm = req.HeightCm
	profile.WeightKg = req.WeightKg
	profile.BodyType = req.BodyType
	profile.FitnessGoal = req.FitnessGoal
	profile.HealthConditions = req.HealthConditions

	if err := db.Save(&profile).Error; err != nil {
		respondError(c, httperr.Storage("save profile", err))
		return
	}

	httpresp.OK(c, profile)
}
