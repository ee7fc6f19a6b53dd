package models

import "time"

type Service struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	DurationMinutes int    `gorm:"default:30" json:"durationMinutes"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
