package dto

import "github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"

// Shapes consumed directly by the scheduling UI and the agent; field names
// are part of the wire contract.

type DoctorDayDTO struct {
	Date  string   `json:"date"`
	Label string   `json:"label"`
	Free  []string `json:"free"`
}

type DoctorAvailabilityDTO struct {
	DoctorID   uint           `json:"doctorId"`
	DoctorName string         `json:"doctorName"`
	Services   []string       `json:"services"`
	Days       []DoctorDayDTO `json:"days"`
}

type WorkHoursEntryDTO struct {
	Day       string `json:"day"`
	Start     string `json:"start"`
	End       string `json:"end"`
	DayOfWeek int    `json:"day_of_week"`
}

type DoctorSummaryDTO struct {
	DoctorID       uint                `json:"doctorId"`
	DoctorName     string              `json:"doctorName"`
	Specialization *string             `json:"specialization"`
	Services       []string            `json:"services"`
	WorkHours      []WorkHoursEntryDTO `json:"workHours"`
}

// SlotCheckResult is the verdict of the slot-validation flow. Reason is one
// of not_working_today, outside_work_hours, slot_unavailable; empty when
// the slot is available.
type SlotCheckResult struct {
	Available   bool
	Reason      string
	SlotLabel   string
	WorkHours   *schedule.WorkInterval
	DoctorID    uint
	Date        string
	Time        string
	SlotMinutes int
}
