package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/konsultaklinik/clinic-scheduler/internal/config"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
	"github.com/konsultaklinik/clinic-scheduler/internal/usecase/availability"
	"github.com/konsultaklinik/clinic-scheduler/internal/validators"
)

// AgentHandler serves the conversational-agent endpoints. Unlike the admin
// routes these answer with a {success, message, data} envelope and spell
// out validation failures per field, because the consumer is a tool-calling
// agent rather than the dashboard.
type AgentHandler struct {
	repo schedule.Repository
	cfg  *config.Config

	day      *availability.ComputeDay
	validate *availability.ValidateSlot
}

func NewAgentHandler(
	repo schedule.Repository,
	cfg *config.Config,
	day *availability.ComputeDay,
	validate *availability.ValidateSlot,
) *AgentHandler {
	return &AgentHandler{repo: repo, cfg: cfg, day: day, validate: validate}
}

// ======================================================
// REQUESTS
// ======================================================

type FilterByServiceRequest struct {
	Service string `json:"service"`
}

type ConfirmChoiceRequest struct {
	DoctorName string `json:"doctorName"`
}

type AgentSlotRequest struct {
	DoctorID    uint   `json:"doctor_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SlotMinutes int    `json:"slotMinutes"`
	Capacity    int    `json:"capacity"`
}

type AgentDayRequest struct {
	DoctorID    uint   `json:"doctor_id"`
	Date        string `json:"date"`
	SlotMinutes int    `json:"slotMinutes"`
	Capacity    int    `json:"capacity"`
}

// doctorCard is the doctor shape inside agent envelopes.
type doctorCard struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Specialization string           `json:"specialization"`
	Description    string           `json:"description"`
	Active         bool             `json:"active"`
	Services       []serviceSummary `json:"services"`
}

type serviceSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *AgentHandler) doctorCard(c *gin.Context, doc models.Doctor) (doctorCard, error) {
	services, err := h.repo.ListDoctorServices(c.Request.Context(), doc.ID)
	if err != nil {
		return doctorCard{}, err
	}

	summaries := make([]serviceSummary, 0, len(services))
	for _, s := range services {
		summaries = append(summaries, serviceSummary{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
		})
	}

	return doctorCard{
		ID:             doc.ID,
		Name:           doc.Name,
		Specialization: doc.Specialization,
		Description:    doc.Description,
		Active:         doc.Active,
		Services:       summaries,
	}, nil
}

// ======================================================
// FILTER BY SERVICE
// ======================================================

func (h *AgentHandler) FilterByService(c *gin.Context) {
	var req FilterByServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Request body must be JSON", httperr.ValidationDetails{
			Field:    "body",
			Received: nil,
			Expected: "JSON object",
		})
		return
	}

	name := strings.TrimSpace(req.Service)
	if name == "" {
		httperr.Validation(c,
			"Service name is required and must be a non-empty string",
			httperr.ValidationDetails{
				Field:    "service",
				Received: req.Service,
				Expected: "non-empty string",
			})
		return
	}

	doctors, err := h.repo.FilterDoctorsByService(c.Request.Context(), name)
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to filter doctors by service.")
		return
	}

	cards := make([]doctorCard, 0, len(doctors))
	for _, doc := range doctors {
		card, err := h.doctorCard(c, doc)
		if err != nil {
			httperr.Internal(c, "internal_server_error", "Failed to filter doctors by service.")
			return
		}
		cards = append(cards, card)
	}

	message := fmt.Sprintf("Found %d doctor(s) providing service: %s", len(cards), name)
	if len(cards) == 0 {
		message = fmt.Sprintf("No doctors found providing service: %s", name)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data": gin.H{
			"service": name,
			"doctors": cards,
			"count":   len(cards),
		},
	})
}

// ======================================================
// CONFIRM CHOICE
// ======================================================

func (h *AgentHandler) ConfirmChoice(c *gin.Context) {
	var req ConfirmChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Request body must be JSON", httperr.ValidationDetails{
			Field:    "body",
			Received: nil,
			Expected: "JSON object",
		})
		return
	}

	name := strings.TrimSpace(req.DoctorName)
	if name == "" {
		httperr.Validation(c,
			"Doctor name is required and must be a non-empty string",
			httperr.ValidationDetails{
				Field:    "doctorName",
				Received: req.DoctorName,
				Expected: "non-empty string",
			})
		return
	}

	doctor, err := h.repo.FindDoctorByName(c.Request.Context(), name)
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to confirm doctor choice.")
		return
	}

	if doctor == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "doctor_not_found",
			"message": fmt.Sprintf("Doctor with name %q not found", name),
			"data": gin.H{
				"searchedName": name,
				"suggestion":   "Please check the spelling or try a different name",
			},
		})
		return
	}

	card, err := h.doctorCard(c, *doctor)
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to confirm doctor choice.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Doctor confirmed: %s", doctor.Name),
		"data": gin.H{
			"doctor_id":      doctor.ID,
			"doctor_name":    doctor.Name,
			"specialization": doctor.Specialization,
			"services":       card.Services,
			"next_step":      "proceed_to_booking",
		},
	})
}

// ======================================================
// VALIDATE SLOT
// ======================================================

func (h *AgentHandler) ValidateSlot(c *gin.Context) {
	var req AgentSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Request body must be JSON", httperr.ValidationDetails{
			Field:    "body",
			Received: nil,
			Expected: "JSON object",
		})
		return
	}

	if req.DoctorID == 0 {
		httperr.Validation(c,
			"Doctor ID is required and must be a positive number",
			httperr.ValidationDetails{
				Field:    "doctor_id",
				Received: req.DoctorID,
				Expected: "positive number",
			})
		return
	}

	if !validators.IsDateShape(req.Date) {
		httperr.Validation(c,
			"Date is required and must be in YYYY-MM-DD format",
			httperr.ValidationDetails{
				Field:    "date",
				Received: req.Date,
				Expected: "YYYY-MM-DD format",
			})
		return
	}

	if !validators.IsTimeShape(req.Time) {
		httperr.Validation(c,
			"Time is required and must be in HH:mm format",
			httperr.ValidationDetails{
				Field:    "time",
				Received: req.Time,
				Expected: "HH:mm format",
			})
		return
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = h.cfg.SlotMinutes
	}
	if slotMinutes < 0 {
		httperr.Validation(c,
			"Slot minutes must be a positive number",
			httperr.ValidationDetails{
				Field:    "slotMinutes",
				Received: req.SlotMinutes,
				Expected: "positive number",
			})
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = h.cfg.SlotCapacity
	}
	if capacity < 0 {
		httperr.Validation(c,
			"Capacity must be a positive number",
			httperr.ValidationDetails{
				Field:    "capacity",
				Received: req.Capacity,
				Expected: "positive number",
			})
		return
	}

	tod, err := schedule.ParseTimeOfDay(req.Time)
	if err != nil {
		httperr.Validation(c, "Invalid time format", httperr.ValidationDetails{
			Field:    "time",
			Received: req.Time,
			Expected: "HH:mm (00:00-23:59)",
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.Validation(c, "Invalid date format", httperr.ValidationDetails{
			Field:    "date",
			Received: req.Date,
			Expected: "valid YYYY-MM-DD date",
		})
		return
	}

	res, err := h.validate.Execute(c.Request.Context(), availability.ValidateSlotInput{
		DoctorID:       req.DoctorID,
		Date:           date,
		Time:           tod,
		SlotMinutes:    slotMinutes,
		Capacity:       capacity,
		IncludePending: true,
	})
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to validate slot availability.")
		return
	}

	data := gin.H{
		"doctor_id":    res.DoctorID,
		"date":         res.Date,
		"time":         res.Time,
		"slot_minutes": res.SlotMinutes,
	}

	switch {
	case res.Available:
		data["slot_label"] = res.SlotLabel
		data["capacity"] = capacity
		data["next_step"] = "proceed_to_booking"

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"available": true,
			"message":   "Slot is available for booking",
			"data":      data,
		})

	case res.Reason == availability.ReasonNotWorkingToday:
		data["reason"] = res.Reason

		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"available": false,
			"message":   "Doctor is not working on this date",
			"data":      data,
		})

	case res.Reason == availability.ReasonOutsideWorkHours:
		data["reason"] = res.Reason
		data["work_hours"] = gin.H{
			"start": res.WorkHours.Start.String(),
			"end":   res.WorkHours.End.String(),
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"available": false,
			"message":   "Requested slot is outside doctor work hours",
			"data":      data,
		})

	default:
		data["slot_label"] = res.SlotLabel
		data["reason"] = res.Reason

		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"available": false,
			"message":   "Slot is not available (already booked or conflicted)",
			"data":      data,
		})
	}
}

// ======================================================
// CHECK DAY AVAILABILITY
// ======================================================

func (h *AgentHandler) CheckDayAvailability(c *gin.Context) {
	var req AgentDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, "Request body must be JSON", httperr.ValidationDetails{
			Field:    "body",
			Received: nil,
			Expected: "JSON object",
		})
		return
	}

	if req.DoctorID == 0 {
		httperr.Validation(c,
			"Doctor ID is required and must be a positive number",
			httperr.ValidationDetails{
				Field:    "doctor_id",
				Received: req.DoctorID,
				Expected: "positive number",
			})
		return
	}

	if !validators.IsDateShape(req.Date) {
		httperr.Validation(c,
			"Date is required and must be in YYYY-MM-DD format",
			httperr.ValidationDetails{
				Field:    "date",
				Received: req.Date,
				Expected: "YYYY-MM-DD format",
			})
		return
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = h.cfg.SlotMinutes
	}
	if slotMinutes < 0 {
		httperr.Validation(c,
			"Slot minutes must be a positive number",
			httperr.ValidationDetails{
				Field:    "slotMinutes",
				Received: req.SlotMinutes,
				Expected: "positive number",
			})
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = h.cfg.SlotCapacity
	}
	if capacity < 0 {
		httperr.Validation(c,
			"Capacity must be a positive number",
			httperr.ValidationDetails{
				Field:    "capacity",
				Received: req.Capacity,
				Expected: "positive number",
			})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.Validation(c, "Invalid date format", httperr.ValidationDetails{
			Field:    "date",
			Received: req.Date,
			Expected: "valid YYYY-MM-DD date",
		})
		return
	}

	ctx := c.Request.Context()

	doctor, err := h.repo.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to check day availability.")
		return
	}
	if doctor == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "doctor_not_found",
			"message": fmt.Sprintf("Doctor with ID %d not found", req.DoctorID),
			"data":    gin.H{"doctor_id": req.DoctorID},
		})
		return
	}

	wh, err := h.repo.WorkHoursForWeekday(ctx, req.DoctorID, int(date.Weekday()))
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to check day availability.")
		return
	}

	if wh == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Doctor is not working on this date",
			"data": gin.H{
				"doctor_id":       doctor.ID,
				"doctor_name":     doctor.Name,
				"date":            req.Date,
				"working":         false,
				"available_slots": []string{},
				"total_slots":     0,
				"reason":          availability.ReasonNotWorkingToday,
			},
		})
		return
	}

	docID := req.DoctorID
	avail, err := h.day.Execute(ctx, availability.ComputeDayInput{
		Date:           date,
		DoctorID:       &docID,
		SlotMinutes:    slotMinutes,
		Capacity:       capacity,
		IncludePending: true,
	})
	if err != nil {
		httperr.Internal(c, "internal_server_error", "Failed to check day availability.")
		return
	}

	total := len(avail.Free)
	message := fmt.Sprintf("No available slots for %s on %s", doctor.Name, req.Date)
	nextStep := "try_different_date"
	if total > 0 {
		message = fmt.Sprintf("Found %d available slot(s) for %s on %s", total, doctor.Name, req.Date)
		nextStep = "choose_slot_and_book"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data": gin.H{
			"doctor_id":   doctor.ID,
			"doctor_name": doctor.Name,
			"date":        req.Date,
			"working":     true,
			"work_hours": gin.H{
				"start": wh.Start.String(),
				"end":   wh.End.String(),
			},
			"slot_minutes":    slotMinutes,
			"capacity":        capacity,
			"available_slots": avail.Free,
			"total_slots":     total,
			"next_step":       nextStep,
		},
	})
}
