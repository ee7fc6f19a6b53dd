package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/konsultaklinik/clinic-scheduler/internal/config"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/usecase/availability"
	"github.com/konsultaklinik/clinic-scheduler/internal/validators"
)

// CalendarHandler serves the clinic-wide availability views the booking
// calendar consumes: free slots only, no patient data.
type CalendarHandler struct {
	cfg *config.Config

	day  *availability.ComputeDay
	rng  *availability.ComputeRange
}

func NewCalendarHandler(
	cfg *config.Config,
	day *availability.ComputeDay,
	rng *availability.ComputeRange,
) *CalendarHandler {
	return &CalendarHandler{cfg: cfg, day: day, rng: rng}
}

// Availability returns [{date, free}] for today through today+days.
func (h *CalendarHandler) Availability(c *gin.Context) {
	daysAhead, ok := parseDaysAhead(c, h.cfg.DefaultDaysView)
	if !ok {
		return
	}

	hours, ok := clinicHours(c, h.cfg)
	if !ok {
		return
	}

	params, ok := parseSlotParams(c, h.cfg)
	if !ok {
		return
	}

	days, err := h.rng.Execute(c.Request.Context(), availability.ComputeRangeInput{
		DaysAhead:      daysAhead,
		ClinicHours:    hours,
		SlotMinutes:    params.SlotMinutes,
		Capacity:       params.Capacity,
		IncludePending: params.IncludePending,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_compute_availability", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, days)
}

// DayAvailability returns {date, free} for one day, addressed either by
// date=YYYY-MM-DD or by year+month+day. doctorId switches from clinic
// hours to the doctor's weekly template.
func (h *CalendarHandler) DayAvailability(c *gin.Context) {
	date, ok := h.resolveDate(c)
	if !ok {
		return
	}

	hours, ok := clinicHours(c, h.cfg)
	if !ok {
		return
	}

	params, ok := parseSlotParams(c, h.cfg)
	if !ok {
		return
	}

	var doctorID *uint
	if v := c.Query("doctorId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			httperr.BadRequest(c, "invalid_doctor_id", "doctorId must be a positive number.")
			return
		}
		id := uint(n)
		doctorID = &id
	}

	avail, err := h.day.Execute(c.Request.Context(), availability.ComputeDayInput{
		Date:           date,
		DoctorID:       doctorID,
		ClinicHours:    hours,
		SlotMinutes:    params.SlotMinutes,
		Capacity:       params.Capacity,
		IncludePending: params.IncludePending,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_compute_availability", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, avail)
}

func (h *CalendarHandler) resolveDate(c *gin.Context) (time.Time, bool) {
	if dateStr := c.Query("date"); dateStr != "" {
		if !validators.IsDateShape(dateStr) {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
			return time.Time{}, false
		}
		d, err := parseDate(dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
			return time.Time{}, false
		}
		return d, true
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	day, err3 := strconv.Atoi(c.Query("day"))
	if err1 != nil || err2 != nil || err3 != nil {
		httperr.BadRequest(c, "missing_date", "Provide date=YYYY-MM-DD or year+month+day.")
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		httperr.BadRequest(c, "invalid_date", "year+month+day do not form a valid date.")
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 30 → Mar 2); reject that.
	if d.Day() != day || int(d.Month()) != month {
		httperr.BadRequest(c, "invalid_date", "year+month+day do not form a valid date.")
		return time.Time{}, false
	}

	return schedule.StartOfDay(d), true
}
