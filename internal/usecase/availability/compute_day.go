package availability

import (
	"context"
	"time"

	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
)

// ======================================================
// INPUT
// ======================================================

type ComputeDayInput struct {
	Date time.Time // midnight of the target calendar day

	// DoctorID nil means clinic-wide hours apply.
	DoctorID    *uint
	ClinicHours schedule.WorkInterval

	SlotMinutes    int
	Capacity       int
	IncludePending bool
}

// ======================================================
// USE CASE
// ======================================================

type ComputeDay struct {
	repo schedule.Repository
}

func NewComputeDay(repo schedule.Repository) *ComputeDay {
	return &ComputeDay{repo: repo}
}

func (uc *ComputeDay) Execute(
	ctx context.Context,
	in ComputeDayInput,
) (schedule.DayAvailability, error) {

	work := in.ClinicHours

	if in.DoctorID != nil {
		wi, err := uc.repo.WorkHoursForWeekday(
			ctx,
			*in.DoctorID,
			int(in.Date.Weekday()),
		)
		if err != nil {
			return schedule.DayAvailability{}, err
		}

		// Day off: empty availability, not an error. The slot loop is
		// never reached.
		if wi == nil {
			return schedule.DayAvailability{
				Date: schedule.DateKey(in.Date),
				Free: []string{},
			}, nil
		}

		work = *wi
	}

	dayStart := work.Start.On(in.Date)
	dayEnd := work.End.On(in.Date)

	occupants, err := uc.repo.BookingsInRange(
		ctx,
		dayStart,
		dayEnd,
		schedule.OccupyingStatuses(in.IncludePending),
		in.DoctorID,
	)
	if err != nil {
		return schedule.DayAvailability{}, err
	}

	slots := schedule.FreeSlots(
		in.Date,
		work,
		in.SlotMinutes,
		in.Capacity,
		occupants,
	)

	return schedule.DayAvailability{
		Date: schedule.DateKey(in.Date),
		Free: schedule.Labels(slots),
	}, nil
}
