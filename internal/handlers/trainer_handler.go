package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/gym-scheduler/internal/imaging"
	"github.com/BruksfildServices01/gym-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/storage"
)

const maxPhotoBytes = 5 << 20

// TrainerHandler manages trainer profiles. storage may be nil, in which case
// photo uploads answer 503.
type TrainerHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	storage storage.FileStorage
}

func NewTrainerHandler(db *gorm.DB, audit *audit.Dispatcher, files storage.FileStorage) *TrainerHandler {
	return &TrainerHandler{db: db, audit: audit, storage: files}
}

// --------- Requests ---------

type CreateTrainerRequest struct {
	UserID          uint   `json:"userId" binding:"required"`
	Name            string `json:"name" binding:"required,max=100"`
	Specialization  string `json:"specialization" binding:"max=200"`
	Bio             string `json:"bio" binding:"max=1000"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0,max=80"`
	ServiceIDs      []uint `json:"serviceIds"`
}

type UpdateTrainerRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Specialization  *string `json:"specialization,omitempty" binding:"omitempty,max=200"`
	Bio             *string `json:"bio,omitempty" binding:"omitempty,max=1000"`
	ExperienceYears *int    `json:"experienceYears,omitempty" binding:"omitempty,min=0,max=80"`
	Active          *bool   `json:"active,omitempty"`
}

type SetTrainerServicesRequest struct {
	ServiceIDs []uint `json:"serviceIds" binding:"required"`
}

// --------- Handlers ---------

func (h *TrainerHandler) List(c *gin.Context) {
	var trainers []models.Trainer
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		Order("id ASC").
		Find(&trainers).Error; err != nil {
		respondError(c, httperr.Storage("list trainers", err))
		return
	}
	httpresp.List(c, trainers)
}

func (h *TrainerHandler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid trainer.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	gym, err := defaultGym(db)
	if err != nil {
		respondError(c, err)
		return
	}

	services, err := h.loadServices(db, req.ServiceIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	trainer := models.Trainer{
		UserID:          req.UserID,
		GymCenterID:     gym.ID,
		Name:            strings.TrimSpace(req.Name),
		Specialization:  req.Specialization,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		Active:          true,
		Services:        services,
	}

	if err := db.Create(&trainer).Error; err != nil {
		if repository.IsUniqueViolation(err, "idx_trainers_user_id") {
			httperr.Conflict(c, "TrainerExists", "A trainer profile already exists for this user.")
			return
		}
		respondError(c, httperr.Storage("create trainer", err))
		return
	}

	writeAudit(h.audit, gym.ID, middleware.UserID(c), "trainer_created", "trainer", &trainer.ID, nil)
	httpresp.Created(c, trainer)
}

func (h *TrainerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid trainer id.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var trainer models.Trainer
	if err := db.First(&trainer, id).Error; err != nil {
		respondError(c, notFoundOr("get trainer", err))
		return
	}

	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid trainer.")
		return
	}

	if req.Name != nil {
		trainer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialization != nil {
		trainer.Specialization = *req.Specialization
	}
	if req.Bio != nil {
		trainer.Bio = *req.Bio
	}
	if req.ExperienceYears != nil {
		trainer.ExperienceYears = *req.ExperienceYears
	}
	if req.Active != nil {
		trainer.Active = *req.Active
	}

	if err := db.Omit("Services", "GymCenter").Save(&trainer).Error; err != nil {
		respondError(c, httperr.Storage("update trainer", err))
		return
	}

	writeAudit(h.audit, trainer.GymCenterID, middleware.UserID(c), "trainer_updated", "trainer", &trainer.ID, nil)
	httpresp.OK(c, trainer)
}

// SetServices replaces the set of services the trainer offers.
func (h *TrainerHandler) SetServices(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid trainer id.")
		return
	}

	var req SetTrainerServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "serviceIds is required.")
		return
	}

	var trainer models.Trainer
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trainer, id).Error; err != nil {
			return notFoundOr("get trainer", err)
		}
		services, err := h.loadServices(tx, req.ServiceIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&trainer).Association("Services").Replace(services); err != nil {
			return httperr.Storage("replace trainer services", err)
		}
		trainer.Services = services
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	writeAudit(h.audit, trainer.GymCenterID, middleware.UserID(c), "trainer_services_updated", "trainer", &trainer.ID,
		map[string]any{"serviceIds": req.ServiceIDs})
	httpresp.OK(c, trainer)
}

// UploadPhoto accepts a multipart "photo" field, converts it to a WebP of
// at most imaging.MaxSide pixels and stores it in object storage.
func (h *TrainerHandler) UploadPhoto(c *gin.Context) {
	if h.storage == nil {
		httperr.Unavailable(c, CodeStorageDisabled, "Photo storage is not configured.")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		badRequest(c, "Invalid trainer id.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var trainer models.Trainer
	if err := db.First(&trainer, id).Error; err != nil {
		respondError(c, notFoundOr("get trainer", err))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, "photo file is required (max 5 MB).")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "photo could not be read.")
		return
	}
	defer f.Close()

	img, err := imaging.ToWebP(f, imaging.MaxSide)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			httperr.Unprocessable(c, CodeInvalidImage, "photo must be a JPEG, PNG or WebP image.")
			return
		}
		respondError(c, err)
		return
	}

	key := fmt.Sprintf("trainers/%d/%s.webp", trainer.ID, uuid.NewString())
	url, err := h.storage.Put(c.Request.Context(), key, imaging.ContentType, bytes.NewReader(img))
	if err != nil {
		httperr.Unavailable(c, CodeStorageError, "Photo upload failed.")
		return
	}

	previous := trainer.PhotoURL
	if err := db.Model(&trainer).Update("photo_url", url).Error; err != nil {
		respondError(c, httperr.Storage("update trainer photo", err))
		return
	}
	trainer.PhotoURL = url
	if old := photoKey(previous); old != "" {
		if err := h.storage.Delete(c.Request.Context(), old); err != nil {
			log.Printf("trainer %d: old photo %s not deleted: %v", trainer.ID, old, err)
		}
	}

	writeAudit(h.audit, trainer.GymCenterID, middleware.UserID(c), "trainer_photo_updated", "trainer", &trainer.ID, nil)
	httpresp.OK(c, trainer)
}

// photoKey recovers the object key from a stored photo URL.
func photoKey(url string) string {
	i := strings.Index(url, "trainers/")
	if i < 0 {
		return ""
	}
	return url[i:]
}

func (h *TrainerHandler) loadServices(db *gorm.DB, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}
	var services []models.Service
	if err := db.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, httperr.Storage("load services", err)
	}
	if len(services) != len(uniq(ids)) {
		return nil, httperr.ErrBusiness(CodeInvalidRequest)
	}
	return services, nil
}

func uniq(ids []uint) map[uint]struct{} {
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
