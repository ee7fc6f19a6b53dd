package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
)

// TimeOfDay is a wall-clock time with minute precision, no date, no zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:mm". Malformed input is rejected: a stored
// work-hour template with a bad time string is a data-quality bug and must
// surface, not silently mean midnight.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, httperr.ErrBusiness("invalid_time")
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, httperr.ErrBusiness("invalid_time")
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, httperr.ErrBusiness("invalid_time")
	}

	return TimeOfDay{Hour: h, Minute: m}, nil
}

// On anchors the time of day on the given calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour, t.Minute, 0, 0,
		date.Location(),
	)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// DateKey is the canonical YYYY-MM-DD form used to group slots by day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ===============================
// Labels
// ===============================

var dayNames = [7]string{
	"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// DayName returns the localized weekday name for 0 Sunday .. 6 Saturday.
func DayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return dayNames[weekday]
}

// LabelForDate renders "Senin, 18 Oktober" for UI cards.
func LabelForDate(d time.Time) string {
	return fmt.Sprintf(
		"%s, %d %s",
		dayNames[int(d.Weekday())],
		d.Day(),
		monthNames[int(d.Month())-1],
	)
}
