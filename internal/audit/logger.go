package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// Logger persists events as AuditLog rows.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		GymCenterID: ev.GymCenterID,
		UserID:      ev.UserID,
		Action:      ev.Action,
		Entity:      ev.Entity,
		EntityID:    ev.EntityID,
		Metadata:    metaJSON,
		CreatedAt:   ev.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
