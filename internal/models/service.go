package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	GymCenterID uint `gorm:"index;not null" json:"gymCenterId"`

	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"size:500" json:"description"`
	Category        string          `gorm:"size:50" json:"category"`
	DurationMinutes int             `gorm:"not null" json:"durationMinutes"`
	Price           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Active          bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
