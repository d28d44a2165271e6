package models

import "time"

// AvailabilityWindow is an open period a trainer declares on a given date.
// Windows are created and deleted, never edited.
type AvailabilityWindow struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TrainerID uint `gorm:"not null;uniqueIndex:ux_window_trainer_start,priority:1" json:"trainerId"`

	Date      time.Time `gorm:"type:date;not null;uniqueIndex:ux_window_trainer_start,priority:2" json:"-"`
	StartTime string    `gorm:"size:5;not null;uniqueIndex:ux_window_trainer_start,priority:3" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" json:"endTime"`
	Active    bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
}
