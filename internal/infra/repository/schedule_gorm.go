package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Bookings (occupancy)
// --------------------------------------------------

func (r *ScheduleGormRepository) BookingsInRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
	statuses []schedule.Status,
	doctorID *uint,
) ([]schedule.Occupant, error) {

	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("booking_date_time", "status", "doctor_id").
		Where(
			"booking_date_time >= ? AND booking_date_time < ? AND status IN ?",
			start, end, st,
		)

	// Equality filter also drops rows with a null doctor.
	if doctorID != nil {
		q = q.Where("doctor_id = ?", *doctorID)
	}

	var rows []models.Booking
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]schedule.Occupant, 0, len(rows))
	for _, b := range rows {
		out = append(out, schedule.Occupant{
			At:       b.BookingDateTime,
			Status:   schedule.Status(b.Status),
			DoctorID: b.DoctorID,
		})
	}

	return out, nil
}

func (r *ScheduleGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ScheduleGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Work hours
// --------------------------------------------------

func (r *ScheduleGormRepository) WorkHoursForWeekday(
	ctx context.Context,
	doctorID uint,
	weekday int,
) (*schedule.WorkInterval, error) {

	var wh models.DoctorWorkHours
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	start, err := schedule.ParseTimeOfDay(wh.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_work_hours")
	}
	end, err := schedule.ParseTimeOfDay(wh.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_work_hours")
	}

	return &schedule.WorkInterval{Start: start, End: end}, nil
}

func (r *ScheduleGormRepository) ListDoctorWorkHours(
	ctx context.Context,
	doctorID uint,
) ([]models.DoctorWorkHours, error) {

	var rows []models.DoctorWorkHours
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Doctors / services metadata
// --------------------------------------------------

func (r *ScheduleGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	err := r.db.WithContext(ctx).First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ScheduleGormRepository) ListDoctors(
	ctx context.Context,
	activeOnly bool,
) ([]models.Doctor, error) {

	q := r.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		q = q.Where("active = true")
	}

	var docs []models.Doctor
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *ScheduleGormRepository) ListDoctorServices(
	ctx context.Context,
	doctorID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Joins("JOIN doctor_services ds ON ds.service_id = services.id").
		Where("ds.doctor_id = ?", doctorID).
		Order("services.name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

func (r *ScheduleGormRepository) FindDoctorByName(
	ctx context.Context,
	name string,
) (*models.Doctor, error) {

	var doc models.Doctor

	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND active = true", name).
		First(&doc).Error

	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Fall back to a partial match, first alphabetically.
	err = r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) AND active = true", "%"+name+"%").
		Order("name ASC").
		First(&doc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *ScheduleGormRepository) FilterDoctorsByService(
	ctx context.Context,
	service string,
) ([]models.Doctor, error) {

	like := "%" + service + "%"

	var docs []models.Doctor
	if err := r.db.WithContext(ctx).
		Distinct("doctors.*").
		Joins("LEFT JOIN doctor_services ds ON ds.doctor_id = doctors.id").
		Joins("LEFT JOIN services s ON s.id = ds.service_id").
		Where("doctors.active = true").
		Where(
			"LOWER(s.name) LIKE LOWER(?) OR LOWER(doctors.specialization) LIKE LOWER(?) OR LOWER(s.description) LIKE LOWER(?)",
			like, like, like,
		).
		Order("doctors.name ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
