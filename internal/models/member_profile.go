package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberProfile holds the fitness data a member keeps about themselves. The
// account itself lives with the identity provider.
type MemberProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	FirstName   string     `gorm:"size:100" json:"firstName"`
	LastName    string     `gorm:"size:100" json:"lastName"`
	DateOfBirth *time.Time `gorm:"type:date" json:"dateOfBirth"`

	HeightCm         *int                `json:"heightCm"`
	WeightKg         decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"weightKg"`
	BodyType         string              `gorm:"size:20" json:"bodyType"`
	FitnessGoal      string              `gorm:"size:200" json:"fitnessGoal"`
	HealthConditions string              `gorm:"size:500" json:"healthConditions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
