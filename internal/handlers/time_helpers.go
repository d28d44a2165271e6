package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

// --------------------------------------------------
// Request parsing
// --------------------------------------------------

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// optionalDate parses a YYYY-MM-DD query parameter. A missing parameter
// yields the zero time and ok.
func optionalDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	d, err := domain.ParseDate(raw)
	return d, err == nil
}

// --------------------------------------------------
// Gym clock
// --------------------------------------------------

// defaultGym returns the gym the deployment serves; the first row wins.
func defaultGym(db *gorm.DB) (*models.GymCenter, error) {
	var gym models.GymCenter
	if err := db.Order("id").First(&gym).Error; err != nil {
		return nil, notFoundOr("get default gym", err)
	}
	return &gym, nil
}

// todayAt is the calendar date it currently is in tz.
func todayAt(tz string) time.Time {
	return domain.DayOf(timezone.NowIn(tz))
}
