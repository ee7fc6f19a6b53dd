package models

// Explicit join row: which services a doctor handles.
type DoctorService struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	DoctorID  uint `gorm:"uniqueIndex:uniq_doctor_service" json:"doctor_id"`
	ServiceID uint `gorm:"uniqueIndex:uniq_doctor_service" json:"service_id"`
}
