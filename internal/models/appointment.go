package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MemberID uint `gorm:"index;not null" json:"memberId"`

	TrainerID uint    `gorm:"not null;index:ix_appointments_trainer_date,priority:1" json:"trainerId"`
	Trainer   Trainer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"serviceId"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	GymCenterID uint `gorm:"not null" json:"gymCenterId"`

	Date      time.Time `gorm:"type:date;not null;index:ix_appointments_trainer_date,priority:2" json:"-"`
	StartTime string    `gorm:"size:5;not null" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" json:"endTime"`

	DurationMinutes int             `gorm:"not null" json:"durationMinutes"`
	Price           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`

	Status string `gorm:"size:20;not null;default:'Pending'" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`
}
