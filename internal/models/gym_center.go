package models

import "time"

type GymCenter struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:200" json:"address"`
	Phone       string `gorm:"size:20" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Description string `gorm:"size:500" json:"description"`

	OpeningTime string `gorm:"size:5" json:"openingTime"`
	ClosingTime string `gorm:"size:5" json:"closingTime"`
	Timezone    string `gorm:"size:64" json:"timezone"`

	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
