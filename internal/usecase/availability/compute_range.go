package availability

import (
	"context"

	"github.com/konsultaklinik/clinic-scheduler/internal/clock"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
)

type ComputeRangeInput struct {
	DaysAhead      int // 0 = today only; N yields N+1 days
	ClinicHours    schedule.WorkInterval
	SlotMinutes    int
	Capacity       int
	IncludePending bool
}

// ComputeRange is the clinic-wide multi-day shape: one booking lookup for
// the whole range, partitioned by calendar date before the per-day loop.
type ComputeRange struct {
	repo schedule.Repository
	now  clock.NowFunc
}

func NewComputeRange(repo schedule.Repository, now clock.NowFunc) *ComputeRange {
	if now == nil {
		now = clock.Now
	}
	return &ComputeRange{repo: repo, now: now}
}

func (uc *ComputeRange) Execute(
	ctx context.Context,
	in ComputeRangeInput,
) ([]schedule.DayAvailability, error) {

	today := schedule.StartOfDay(uc.now())

	rangeStart := today
	rangeEnd := today.AddDate(0, 0, in.DaysAhead+1) // exclusive

	occupants, err := uc.repo.BookingsInRange(
		ctx,
		rangeStart,
		rangeEnd,
		schedule.OccupyingStatuses(in.IncludePending),
		nil,
	)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]schedule.Occupant)
	for _, oc := range occupants {
		key := schedule.DateKey(oc.At)
		byDay[key] = append(byDay[key], oc)
	}

	days := make([]schedule.DayAvailability, 0, in.DaysAhead+1)

	for i := 0; i <= in.DaysAhead; i++ {
		date := today.AddDate(0, 0, i)
		key := schedule.DateKey(date)

		slots := schedule.FreeSlots(
			date,
			in.ClinicHours,
			in.SlotMinutes,
			in.Capacity,
			byDay[key],
		)

		days = append(days, schedule.DayAvailability{
			Date: key,
			Free: schedule.Labels(slots),
		})
	}

	return days, nil
}
