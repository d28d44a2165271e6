package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	from, ok1 := optionalDate(c, "from")
	to, ok2 := optionalDate(c, "to")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, CodeInvalidDate, "Dates must be YYYY-MM-DD.")
		return
	}

	// --------------------------------------------------
	// Filters
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}
	if raw := c.Query("userId"); raw != "" {
		uid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, "Invalid userId.")
			return
		}
		q = q.Where("user_id = ?", uid)
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, httperr.Storage("count audit logs", err))
		return
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		respondError(c, httperr.Storage("list audit logs", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

