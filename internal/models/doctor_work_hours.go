package models

import "time"

// Weekly template row. Weekday follows time.Weekday: 0 Sunday .. 6 Saturday.
// A doctor with no row for a weekday does not work that day.
type DoctorWorkHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"uniqueIndex:uniq_doctor_day" json:"doctor_id"`

	Weekday int `gorm:"uniqueIndex:uniq_doctor_day" json:"day_of_week"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
