package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/gym-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the catalog and slot lookups every authenticated
// role may read.
type PublicHandler struct {
	db           *gorm.DB
	availability *ucAppointment.GetAvailability
}

func NewPublicHandler(db *gorm.DB, availability *ucAppointment.GetAvailability) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	trainerID, ok1 := parseIDQuery(c, "trainerId")
	serviceID, ok2 := parseIDQuery(c, "serviceId")
	if !ok1 || !ok2 || trainerID == 0 || serviceID == 0 {
		badRequest(c, "trainerId and serviceId are required.")
		return
	}

	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, CodeInvalidDate, "Date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TrainerID: trainerID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("active = ?", true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		respondError(c, httperr.Storage("list services", err))
		return
	}

	httpresp.List(c, services)
}

// ListServiceTrainers returns the active trainers offering :id.
func (h *PublicHandler) ListServiceTrainers(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid service id.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var service models.Service
	if err := db.Where("id = ? AND active = ?", serviceID, true).First(&service).Error; err != nil {
		respondError(c, notFoundOr("get service", err))
		return
	}

	var trainers []models.Trainer
	if err := db.
		Joins("JOIN trainer_services ts ON ts.trainer_id = trainers.id").
		Where("ts.service_id = ? AND trainers.active = ?", service.ID, true).
		Order("trainers.name ASC").
		Find(&trainers).Error; err != nil {
		respondError(c, httperr.Storage("list trainers", err))
		return
	}

	httpresp.List(c, trainers)
}

func (h *PublicHandler) GetTrainer(c *gin.Context) {
	trainerID, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid trainer id.")
		return
	}

	var trainer models.Trainer
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services", "active = ?", true).
		Where("id = ? AND active = ?", trainerID, true).
		First(&trainer).Error; err != nil {
		respondError(c, notFoundOr("get trainer", err))
		return
	}

	httpresp.OK(c, trainer)
}

// notFoundOr maps a missing row to NotFound and anything else to a storage
// fault.
func notFoundOr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return httperr.Storage(op, err)
}
