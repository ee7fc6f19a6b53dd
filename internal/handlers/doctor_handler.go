package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/konsultaklinik/clinic-scheduler/internal/audit"
	"github.com/konsultaklinik/clinic-scheduler/internal/config"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/dto"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/httpresp"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
	"github.com/konsultaklinik/clinic-scheduler/internal/usecase/availability"
	"github.com/konsultaklinik/clinic-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type DoctorHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *audit.Dispatcher

	day      *availability.ComputeDay
	days     *availability.DoctorDays
	summary  *availability.DoctorSummary
	validate *availability.ValidateSlot
}

func NewDoctorHandler(
	db *gorm.DB,
	cfg *config.Config,
	dispatcher *audit.Dispatcher,
	day *availability.ComputeDay,
	days *availability.DoctorDays,
	summary *availability.DoctorSummary,
	validate *availability.ValidateSlot,
) *DoctorHandler {
	return &DoctorHandler{
		db:       db,
		cfg:      cfg,
		audit:    dispatcher,
		day:      day,
		days:     days,
		summary:  summary,
		validate: validate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
	Description    string `json:"description"`
	Active         *bool  `json:"active"`
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Description    *string `json:"description,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

type SetDoctorServicesRequest struct {
	ServiceIDs []uint `json:"serviceIds" binding:"required"`
}

type WorkHoursEntryRequest struct {
	Weekday   int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type SetWorkHoursRequest struct {
	Entries []WorkHoursEntryRequest `json:"entries" binding:"required"`
}

// ======================================================
// CRUD
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var doctors []models.Doctor
	if err := q.Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Failed to list doctors.")
		return
	}

	httpresp.OK(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, doctor)
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	doctor := models.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Description:    req.Description,
		Active:         active,
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_doctor", "Failed to create doctor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "doctor_created",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	httpresp.Created(c, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Description != nil {
		doctor.Description = *req.Description
	}
	if req.Active != nil {
		doctor.Active = *req.Active
	}

	if err := h.db.Save(&doctor).Error; err != nil {
		httperr.Internal(c, "failed_to_update_doctor", "Failed to update doctor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "doctor_updated",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	httpresp.OK(c, doctor)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctor.ID).
			Delete(&models.DoctorService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", doctor.ID).
			Delete(&models.DoctorWorkHours{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctor).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_doctor", "Failed to delete doctor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "doctor_deleted",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ======================================================
// SERVICES ASSIGNMENT
// ======================================================

func (h *DoctorHandler) ListServices(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Joins("JOIN doctor_services ON doctor_services.service_id = services.id").
		Where("doctor_services.doctor_id = ?", doctor.ID).
		Order("services.name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_doctor_services", "Failed to list doctor services.")
		return
	}

	httpresp.OK(c, services)
}

// SetServices replaces the full assignment set in one transaction.
func (h *DoctorHandler) SetServices(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	var req SetDoctorServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctor.ID).
			Delete(&models.DoctorService{}).Error; err != nil {
			return err
		}

		for _, sid := range req.ServiceIDs {
			var count int64
			if err := tx.Model(&models.Service{}).
				Where("id = ?", sid).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return httperr.ErrBusiness("service_not_found")
			}

			row := models.DoctorService{DoctorID: doctor.ID, ServiceID: sid}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "One of the service ids does not exist.")
			return
		}
		httperr.Internal(c, "failed_to_set_doctor_services", "Failed to set doctor services.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "doctor_services_set",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	h.ListServices(c)
}

// ======================================================
// WORK HOURS TEMPLATE
// ======================================================

func (h *DoctorHandler) ListWorkHours(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	var rows []models.DoctorWorkHours
	if err := h.db.
		Where("doctor_id = ?", doctor.ID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_list_work_hours", "Failed to list work hours.")
		return
	}

	httpresp.OK(c, rows)
}

// SetWorkHours replaces the weekly template. Weekdays not listed become
// days off.
func (h *DoctorHandler) SetWorkHours(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	var req SetWorkHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	seen := make(map[int]bool, len(req.Entries))
	for _, e := range req.Entries {
		if e.Weekday < 0 || e.Weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "day_of_week must be 0 (Sunday) .. 6 (Saturday).")
			return
		}
		if seen[e.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear at most once.")
			return
		}
		seen[e.Weekday] = true

		start, err := schedule.ParseTimeOfDay(e.StartTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_time", "start_time must be HH:mm.")
			return
		}
		end, err := schedule.ParseTimeOfDay(e.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_time", "end_time must be HH:mm.")
			return
		}
		if !start.Before(end) {
			httperr.BadRequest(c, "invalid_interval", "start_time must be before end_time.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctor.ID).
			Delete(&models.DoctorWorkHours{}).Error; err != nil {
			return err
		}

		for _, e := range req.Entries {
			row := models.DoctorWorkHours{
				DoctorID:  doctor.ID,
				Weekday:   e.Weekday,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_set_work_hours", "Failed to set work hours.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "work_hours_set",
		Entity:   "doctor",
		EntityID: &doctor.ID,
	})

	h.ListWorkHours(c)
}

// ======================================================
// AVAILABILITY
// ======================================================

// DayAvailability computes the free slots of one doctor on one date.
func (h *DoctorHandler) DayAvailability(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if !validators.IsDateShape(dateStr) {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}
	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	params, ok := parseSlotParams(c, h.cfg)
	if !ok {
		return
	}

	docID := doctor.ID
	avail, err := h.day.Execute(c.Request.Context(), availability.ComputeDayInput{
		Date:           date,
		DoctorID:       &docID,
		SlotMinutes:    params.SlotMinutes,
		Capacity:       params.Capacity,
		IncludePending: params.IncludePending,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_compute_availability", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctorId":   doctor.ID,
		"doctorName": doctor.Name,
		"date":       avail.Date,
		"label":      schedule.LabelForDate(date),
		"free":       avail.Free,
	})
}

// SlotCheck answers whether one concrete slot is bookable for this doctor.
func (h *DoctorHandler) SlotCheck(c *gin.Context) {
	doctor, ok := h.find(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if !validators.IsDateShape(dateStr) {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}
	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	timeStr := c.Query("time")
	if !validators.IsTimeShape(timeStr) {
		httperr.BadRequest(c, "invalid_time", "time must be HH:mm.")
		return
	}
	tod, err := schedule.ParseTimeOfDay(timeStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "time must be HH:mm.")
		return
	}

	params, ok := parseSlotParams(c, h.cfg)
	if !ok {
		return
	}

	res, err := h.validate.Execute(c.Request.Context(), availability.ValidateSlotInput{
		DoctorID:       doctor.ID,
		Date:           date,
		Time:           tod,
		SlotMinutes:    params.SlotMinutes,
		Capacity:       params.Capacity,
		IncludePending: params.IncludePending,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_validate_slot", "Failed to validate slot.")
		return
	}

	c.JSON(http.StatusOK, slotCheckBody(res))
}

// slotCheckBody flattens the verdict into the wire shape the frontends
// expect: workHours only when the doctor works that day, reason only when
// the slot is not available.
func slotCheckBody(res dto.SlotCheckResult) gin.H {
	body := gin.H{
		"available":   res.Available,
		"doctorId":    res.DoctorID,
		"date":        res.Date,
		"time":        res.Time,
		"slotMinutes": res.SlotMinutes,
	}

	if res.SlotLabel != "" {
		body["slot"] = res.SlotLabel
	}
	if res.WorkHours != nil {
		body["workHours"] = gin.H{
			"start": res.WorkHours.Start.String(),
			"end":   res.WorkHours.End.String(),
		}
	}
	if !res.Available {
		body["reason"] = res.Reason
	}

	return body
}

// Availability is the aggregate multi-day view across all doctors.
func (h *DoctorHandler) Availability(c *gin.Context) {
	daysAhead, ok := parseDaysAhead(c, h.cfg.DefaultDaysView)
	if !ok {
		return
	}

	params, ok := parseSlotParams(c, h.cfg)
	if !ok {
		return
	}

	out, err := h.days.Execute(c.Request.Context(), availability.DoctorDaysInput{
		DaysAhead:      daysAhead,
		SlotMinutes:    params.SlotMinutes,
		Capacity:       params.Capacity,
		IncludePending: params.IncludePending,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_compute_availability", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctors": out})
}

// Summary reports each doctor's services and weekly template.
func (h *DoctorHandler) Summary(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	out, err := h.summary.Execute(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_get_summary", "Failed to get doctor summary.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctors": out})
}

// ======================================================
// SHARED
// ======================================================

func (h *DoctorHandler) find(c *gin.Context) (models.Doctor, bool) {
	var doctor models.Doctor
	if err := h.db.First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
			return doctor, false
		}
		httperr.Internal(c, "failed_to_get_doctor", "Failed to get doctor.")
		return doctor, false
	}
	return doctor, true
}
