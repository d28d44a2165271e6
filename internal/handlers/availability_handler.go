package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/dto"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/validators"
)

const windowIndexName = "ux_window_trainer_start"

// AvailabilityHandler lets a trainer publish the windows slots are cut from.
type AvailabilityHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAvailabilityHandler(db *gorm.DB, audit *audit.Dispatcher) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, audit: audit}
}

type CreateWindowRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

func (h *AvailabilityHandler) currentTrainer(c *gin.Context) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := h.db.WithContext(c.Request.Context()).
		Preload("GymCenter").
		Where("user_id = ?", middleware.UserID(c)).
		First(&trainer).Error; err != nil {
		return nil, notFoundOr("get trainer", err)
	}
	return &trainer, nil
}

// List returns the trainer's windows, optionally bounded by ?from and ?to.
func (h *AvailabilityHandler) List(c *gin.Context) {
	from, ok1 := optionalDate(c, "from")
	to, ok2 := optionalDate(c, "to")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, CodeInvalidDate, "Dates must be YYYY-MM-DD.")
		return
	}

	trainer, err := h.currentTrainer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("trainer_id = ?", trainer.ID)
	if !from.IsZero() {
		q = q.Where("date >= ?", domain.FormatDate(from))
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", domain.FormatDate(to))
	}

	var windows []models.AvailabilityWindow
	if err := q.Order("date ASC").Order("start_time ASC").Find(&windows).Error; err != nil {
		respondError(c, httperr.Storage("list windows", err))
		return
	}

	httpresp.List(c, dto.FromWindows(windows))
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date, startTime and endTime are required.")
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, CodeInvalidDate, "Date must be YYYY-MM-DD.")
		return
	}
	if !validators.IsWindow(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, domain.CodeInvalidTime, "startTime must be before endTime, both HH:MM.")
		return
	}

	trainer, err := h.currentTrainer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if date.Before(todayAt(trainer.GymCenter.Timezone)) {
		httperr.Unprocessable(c, CodeInvalidDate, "Windows cannot be added in the past.")
		return
	}

	window := models.AvailabilityWindow{
		TrainerID: trainer.ID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&window).Error; err != nil {
		if repository.IsUniqueViolation(err, windowIndexName) {
			respondError(c, httperr.ErrBusiness(CodeDuplicateWindow))
			return
		}
		respondError(c, httperr.Storage("create window", err))
		return
	}

	writeAudit(h.audit, trainer.GymCenterID, trainer.UserID, "window_created", "availability_window", &window.ID, nil)
	httpresp.Created(c, dto.FromWindow(&window))
}

// Delete removes one of the caller's windows. Appointments already booked
// inside it are kept.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid window id.")
		return
	}

	trainer, err := h.currentTrainer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND trainer_id = ?", id, trainer.ID).
		Delete(&models.AvailabilityWindow{})
	if res.Error != nil {
		respondError(c, httperr.Storage("delete window", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, domain.CodeNotFound, "Window not found.")
		return
	}

	writeAudit(h.audit, trainer.GymCenterID, trainer.UserID, "window_deleted", "availability_window", &id, nil)
	c.Status(http.StatusNoContent)
}

