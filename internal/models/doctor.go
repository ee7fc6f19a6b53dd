package models

import "time"

type Doctor struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:255;not null" json:"name"`
	Specialization string `gorm:"size:255" json:"specialization"`
	Description    string `gorm:"type:text" json:"description"`
	Active         bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
