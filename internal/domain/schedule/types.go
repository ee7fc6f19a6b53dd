package schedule

import (
	"fmt"
	"time"
)

// WorkInterval is the bookable window of a weekday. An inverted interval
// (start after end) is not an error; it simply yields zero slots.
type WorkInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Slot is a half-open window [Start, End) within a single day.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Label renders the wire form "HH:mm-HH:mm".
func (s Slot) Label() string {
	return fmt.Sprintf(
		"%02d:%02d-%02d:%02d",
		s.Start.Hour(), s.Start.Minute(),
		s.End.Hour(), s.End.Minute(),
	)
}

// Occupant is the read-only projection of a booking the engine counts
// against slot capacity. Never mutated here.
type Occupant struct {
	At       time.Time
	Status   Status
	DoctorID *uint
}

// DayAvailability is the per-day result: ordered free slot labels.
type DayAvailability struct {
	Date string   `json:"date"`
	Free []string `json:"free"`
}
