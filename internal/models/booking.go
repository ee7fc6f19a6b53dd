package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	Patient       string     `gorm:"size:100;not null" json:"patient"`
	Gender        string     `gorm:"size:20;not null" json:"gender"`
	NIK           string     `gorm:"size:20" json:"nik"`
	Relation      string     `gorm:"size:50" json:"relation"`
	FamilyHead    string     `gorm:"size:100" json:"familyHead"`
	Address       string     `gorm:"type:text" json:"address"`
	BirthPlace    string     `gorm:"size:100" json:"birthPlace"`
	DOB           *time.Time `json:"dob"`
	MaritalStatus string     `gorm:"size:50" json:"maritalStatus"`
	Job           string     `gorm:"size:100" json:"job"`
	Education     string     `gorm:"size:20" json:"education"`
	Phone         string     `gorm:"size:20;not null" json:"phone"`

	Service string `gorm:"size:50;not null" json:"service"`

	DoctorID *uint   `json:"doctor_id"`
	Doctor   *Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor,omitempty"`

	BookingDateTime time.Time `gorm:"index;not null" json:"bookingDateTime"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
