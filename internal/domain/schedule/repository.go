package schedule

import (
	"context"
	"time"

	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Bookings (occupancy) --------

	// BookingsInRange returns the occupying projections of bookings whose
	// instant falls in [start, end) with one of the given statuses. When
	// doctorID is set, only bookings assigned to that doctor match; rows
	// with a null doctor are excluded.
	BookingsInRange(
		ctx context.Context,
		start time.Time,
		end time.Time,
		statuses []Status,
		doctorID *uint,
	) ([]Occupant, error)

	// -------- Work hours --------

	// WorkHoursForWeekday resolves a doctor's template for a weekday.
	// Absence (doctor does not work that day) is (nil, nil), not an error.
	WorkHoursForWeekday(
		ctx context.Context,
		doctorID uint,
		weekday int,
	) (*WorkInterval, error)

	ListDoctorWorkHours(
		ctx context.Context,
		doctorID uint,
	) ([]models.DoctorWorkHours, error)

	// -------- Doctors / services metadata --------

	// GetDoctor returns (nil, nil) when no doctor has the id.
	GetDoctor(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	ListDoctors(
		ctx context.Context,
		activeOnly bool,
	) ([]models.Doctor, error)

	ListDoctorServices(
		ctx context.Context,
		doctorID uint,
	) ([]models.Service, error)

	FindDoctorByName(
		ctx context.Context,
		name string,
	) (*models.Doctor, error)

	FilterDoctorsByService(
		ctx context.Context,
		service string,
	) ([]models.Doctor, error)
}
