package availability

import (
	"context"

	"github.com/konsultaklinik/clinic-scheduler/internal/clock"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/dto"
)

type DoctorDaysInput struct {
	DaysAhead      int
	SlotMinutes    int
	Capacity       int
	IncludePending bool
}

// DoctorDays builds the per-doctor multi-day view: every doctor, every day
// in [0, daysAhead], through the single-day engine so the two shapes can
// never disagree. O(doctors × days) lookups; fine for a single clinic.
type DoctorDays struct {
	repo schedule.Repository
	day  *ComputeDay
	now  clock.NowFunc
}

func NewDoctorDays(
	repo schedule.Repository,
	day *ComputeDay,
	now clock.NowFunc,
) *DoctorDays {
	if now == nil {
		now = clock.Now
	}
	return &DoctorDays{repo: repo, day: day, now: now}
}

func (uc *DoctorDays) Execute(
	ctx context.Context,
	in DoctorDaysInput,
) ([]dto.DoctorAvailabilityDTO, error) {

	doctors, err := uc.repo.ListDoctors(ctx, false)
	if err != nil {
		return nil, err
	}

	today := schedule.StartOfDay(uc.now())

	out := make([]dto.DoctorAvailabilityDTO, 0, len(doctors))

	for _, doc := range doctors {
		services, err := uc.repo.ListDoctorServices(ctx, doc.ID)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(services))
		for _, s := range services {
			names = append(names, s.Name)
		}

		days := make([]dto.DoctorDayDTO, 0, in.DaysAhead+1)

		for i := 0; i <= in.DaysAhead; i++ {
			date := today.AddDate(0, 0, i)

			docID := doc.ID
			avail, err := uc.day.Execute(ctx, ComputeDayInput{
				Date:           date,
				DoctorID:       &docID,
				SlotMinutes:    in.SlotMinutes,
				Capacity:       in.Capacity,
				IncludePending: in.IncludePending,
			})
			if err != nil {
				return nil, err
			}

			days = append(days, dto.DoctorDayDTO{
				Date:  avail.Date,
				Label: schedule.LabelForDate(date),
				Free:  avail.Free,
			})
		}

		out = append(out, dto.DoctorAvailabilityDTO{
			DoctorID:   doc.ID,
			DoctorName: doc.Name,
			Services:   names,
			Days:       days,
		})
	}

	return out, nil
}
