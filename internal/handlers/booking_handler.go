package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/konsultaklinik/clinic-scheduler/internal/audit"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/httpresp"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
	ucBooking "github.com/konsultaklinik/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	approve *ucBooking.ApproveBooking
	reject  *ucBooking.RejectBooking
}

func NewBookingHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	approve *ucBooking.ApproveBooking,
	reject *ucBooking.RejectBooking,
) *BookingHandler {
	return &BookingHandler{
		db:      db,
		audit:   dispatcher,
		approve: approve,
		reject:  reject,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Patient       string `json:"patient" binding:"required"`
	Gender        string `json:"gender"`
	NIK           string `json:"nik"`
	Relation      string `json:"relation"`
	FamilyHead    string `json:"familyHead"`
	Address       string `json:"address"`
	BirthPlace    string `json:"birthPlace"`
	DOB           string `json:"dob"` // YYYY-MM-DD
	MaritalStatus string `json:"maritalStatus"`
	Job           string `json:"job"`
	Education     string `json:"education"`
	Phone         string `json:"phone" binding:"required"`

	Service  string `json:"service" binding:"required"`
	DoctorID *uint  `json:"doctor_id"`

	BookingDateTime string `json:"bookingDateTime" binding:"required"`
	Status          string `json:"status"`
}

type UpdateBookingRequest struct {
	Patient         *string `json:"patient,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	NIK             *string `json:"nik,omitempty"`
	Relation        *string `json:"relation,omitempty"`
	FamilyHead      *string `json:"familyHead,omitempty"`
	Address         *string `json:"address,omitempty"`
	BirthPlace      *string `json:"birthPlace,omitempty"`
	DOB             *string `json:"dob,omitempty"`
	MaritalStatus   *string `json:"maritalStatus,omitempty"`
	Job             *string `json:"job,omitempty"`
	Education       *string `json:"education,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Service         *string `json:"service,omitempty"`
	DoctorID        *uint   `json:"doctor_id,omitempty"`
	BookingDateTime *string `json:"bookingDateTime,omitempty"`
	Status          *string `json:"status,omitempty"`
}

// ======================================================
// HELPERS
// ======================================================

// parseBookingDateTime accepts RFC3339 or plain local "YYYY-MM-DD HH:mm".
func parseBookingDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.RFC3339, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	var bookings []models.Booking
	if err := h.db.
		Preload("Doctor").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.OK(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var booking models.Booking
	if err := h.db.Preload("Doctor").First(&booking, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Failed to get booking.")
		return
	}

	httpresp.OK(c, booking)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	when, err := parseBookingDateTime(req.BookingDateTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_datetime", "bookingDateTime is not a valid date/time.")
		return
	}

	var dob *time.Time
	if req.DOB != "" {
		d, err := parseDate(req.DOB)
		if err != nil {
			httperr.BadRequest(c, "invalid_dob", "dob must be YYYY-MM-DD.")
			return
		}
		dob = &d
	}

	status := req.Status
	if status == "" {
		status = string(schedule.InitialStatus())
	}
	if !schedule.IsValidStatus(status) {
		httperr.BadRequest(c, "invalid_status", "status must be pending, approved or rejected.")
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = "Laki-laki"
	}

	marital := req.MaritalStatus
	if marital == "" {
		marital = "Belum Menikah"
	}

	booking := models.Booking{
		Reference:       uuid.NewString(),
		Patient:         req.Patient,
		Gender:          gender,
		NIK:             req.NIK,
		Relation:        req.Relation,
		FamilyHead:      req.FamilyHead,
		Address:         req.Address,
		BirthPlace:      req.BirthPlace,
		DOB:             dob,
		MaritalStatus:   marital,
		Job:             req.Job,
		Education:       req.Education,
		Phone:           req.Phone,
		Service:         req.Service,
		DoctorID:        req.DoctorID,
		BookingDateTime: when,
		Status:          status,
	}

	if err := h.db.Create(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_create_booking", "Failed to create booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	h.db.Preload("Doctor").First(&booking, booking.ID)

	httpresp.Created(c, booking)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var booking models.Booking
	if err := h.db.First(&booking, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Failed to get booking.")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Patient != nil {
		booking.Patient = *req.Patient
	}
	if req.Gender != nil {
		booking.Gender = *req.Gender
	}
	if req.NIK != nil {
		booking.NIK = *req.NIK
	}
	if req.Relation != nil {
		booking.Relation = *req.Relation
	}
	if req.FamilyHead != nil {
		booking.FamilyHead = *req.FamilyHead
	}
	if req.Address != nil {
		booking.Address = *req.Address
	}
	if req.BirthPlace != nil {
		booking.BirthPlace = *req.BirthPlace
	}
	if req.MaritalStatus != nil {
		booking.MaritalStatus = *req.MaritalStatus
	}
	if req.Job != nil {
		booking.Job = *req.Job
	}
	if req.Education != nil {
		booking.Education = *req.Education
	}
	if req.Phone != nil {
		booking.Phone = *req.Phone
	}
	if req.Service != nil {
		booking.Service = *req.Service
	}
	if req.DoctorID != nil {
		booking.DoctorID = req.DoctorID
	}

	if req.DOB != nil {
		d, err := parseDate(*req.DOB)
		if err != nil {
			httperr.BadRequest(c, "invalid_dob", "dob must be YYYY-MM-DD.")
			return
		}
		booking.DOB = &d
	}

	if req.BookingDateTime != nil {
		when, err := parseBookingDateTime(*req.BookingDateTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_booking_datetime", "bookingDateTime is not a valid date/time.")
			return
		}
		booking.BookingDateTime = when
	}

	if req.Status != nil {
		if !schedule.IsValidStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "status must be pending, approved or rejected.")
			return
		}
		booking.Status = *req.Status
	}

	if err := h.db.Save(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Failed to update booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	h.db.Preload("Doctor").First(&booking, booking.ID)

	httpresp.OK(c, booking)
}

// ======================================================
// APPROVE / REJECT
// ======================================================

func (h *BookingHandler) Approve(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	b, err := h.approve.Execute(c.Request.Context(), id, actorFromContext(c))
	h.writeTransition(c, b, err)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	b, err := h.reject.Execute(c.Request.Context(), id, actorFromContext(c))
	h.writeTransition(c, b, err)
}

func (h *BookingHandler) paramID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id must be a number.")
		return 0, false
	}
	return uint(n), true
}

func (h *BookingHandler) writeTransition(c *gin.Context, b *models.Booking, err error) {
	switch {
	case err == nil:
		httpresp.OK(c, b)
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Only pending bookings can change status.")
	default:
		httperr.Internal(c, "failed_to_update_booking", "Failed to update booking.")
	}
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var booking models.Booking
	if err := h.db.First(&booking, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_booking", "Failed to get booking.")
		return
	}

	if err := h.db.Delete(&booking).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "Failed to delete booking.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorFromContext(c),
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &booking.ID,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
