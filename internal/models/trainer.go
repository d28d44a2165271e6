package models

import "time"

// Trainer is the public profile of a staff member. UserID is the subject of
// the trainer's identity token.
type Trainer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"userId"`
	GymCenterID uint      `gorm:"index;not null" json:"gymCenterId"`
	GymCenter   GymCenter `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name            string `gorm:"size:100;not null" json:"name"`
	Specialization  string `gorm:"size:200" json:"specialization"`
	Bio             string `gorm:"size:1000" json:"bio"`
	ExperienceYears int    `json:"experienceYears"`
	PhotoURL        string `gorm:"size:500" json:"photoUrl"`
	Active          bool   `gorm:"default:true" json:"active"`

	Services []Service `gorm:"many2many:trainer_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
