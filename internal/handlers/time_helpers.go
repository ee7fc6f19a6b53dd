package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/konsultaklinik/clinic-scheduler/internal/config"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/middleware"
)

// actorFromContext returns the authenticated user id when the request
// passed through the auth middleware, nil on public routes.
func actorFromContext(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func parseDate(dateStr string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.StartOfDay(d), nil
}

// slotParams are the knobs every availability endpoint shares.
type slotParams struct {
	SlotMinutes    int
	Capacity       int
	IncludePending bool
}

// parseSlotParams validates slotMinutes/capacity/includePending query
// parameters against the configured defaults. Non-positive values are
// caller errors and never reach the engine.
func parseSlotParams(c *gin.Context, cfg *config.Config) (slotParams, bool) {
	p := slotParams{
		SlotMinutes:    cfg.SlotMinutes,
		Capacity:       cfg.SlotCapacity,
		IncludePending: c.DefaultQuery("includePending", "1") == "1",
	}

	if v := c.Query("slotMinutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httperr.BadRequest(c, "invalid_slot_minutes", "slotMinutes must be a positive number.")
			return p, false
		}
		p.SlotMinutes = n
	}

	if v := c.Query("capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			httperr.BadRequest(c, "invalid_capacity", "capacity must be a positive number.")
			return p, false
		}
		p.Capacity = n
	}

	return p, true
}

func parseDaysAhead(c *gin.Context, def int) (int, bool) {
	v := c.Query("days")
	if v == "" {
		return def, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		httperr.BadRequest(c, "invalid_days", "days must be a number >= 0.")
		return 0, false
	}
	return n, true
}

func clinicHours(c *gin.Context, cfg *config.Config) (schedule.WorkInterval, bool) {
	start, err := schedule.ParseTimeOfDay(c.DefaultQuery("workStart", cfg.ClinicOpen))
	if err != nil {
		httperr.BadRequest(c, "invalid_work_start", "workStart must be HH:mm.")
		return schedule.WorkInterval{}, false
	}

	end, err := schedule.ParseTimeOfDay(c.DefaultQuery("workEnd", cfg.ClinicClose))
	if err != nil {
		httperr.BadRequest(c, "invalid_work_end", "workEnd must be HH:mm.")
		return schedule.WorkInterval{}, false
	}

	return schedule.WorkInterval{Start: start, End: end}, true
}
