package availability

import (
	"context"
	"time"

	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/dto"
)

const (
	ReasonNotWorkingToday  = "not_working_today"
	ReasonOutsideWorkHours = "outside_work_hours"
	ReasonSlotUnavailable  = "slot_unavailable"
)

type ValidateSlotInput struct {
	DoctorID       uint
	Date           time.Time
	Time           schedule.TimeOfDay
	SlotMinutes    int
	Capacity       int
	IncludePending bool
}

// ValidateSlot answers whether one specific slot can be booked. It is a
// derived convenience over ComputeDay, not a second slot loop: the verdict
// for a label must always equal "label appears in ComputeDay().Free".
type ValidateSlot struct {
	repo schedule.Repository
	day  *ComputeDay
}

func NewValidateSlot(repo schedule.Repository, day *ComputeDay) *ValidateSlot {
	return &ValidateSlot{repo: repo, day: day}
}

func (uc *ValidateSlot) Execute(
	ctx context.Context,
	in ValidateSlotInput,
) (dto.SlotCheckResult, error) {

	res := dto.SlotCheckResult{
		DoctorID:    in.DoctorID,
		Date:        schedule.DateKey(in.Date),
		Time:        in.Time.String(),
		SlotMinutes: in.SlotMinutes,
	}

	wi, err := uc.repo.WorkHoursForWeekday(
		ctx,
		in.DoctorID,
		int(in.Date.Weekday()),
	)
	if err != nil {
		return res, err
	}

	if wi == nil {
		res.Reason = ReasonNotWorkingToday
		return res, nil
	}

	slotStart := in.Time.On(in.Date)
	slotEnd := slotStart.Add(time.Duration(in.SlotMinutes) * time.Minute)

	workStart := wi.Start.On(in.Date)
	workEnd := wi.End.On(in.Date)

	res.WorkHours = wi
	res.SlotLabel = schedule.Slot{Start: slotStart, End: slotEnd}.Label()

	if slotStart.Before(workStart) || slotEnd.After(workEnd) {
		res.Reason = ReasonOutsideWorkHours
		return res, nil
	}

	docID := in.DoctorID
	day, err := uc.day.Execute(ctx, ComputeDayInput{
		Date:           in.Date,
		DoctorID:       &docID,
		SlotMinutes:    in.SlotMinutes,
		Capacity:       in.Capacity,
		IncludePending: in.IncludePending,
	})
	if err != nil {
		return res, err
	}

	for _, label := range day.Free {
		if label == res.SlotLabel {
			res.Available = true
			return res, nil
		}
	}

	res.Reason = ReasonSlotUnavailable
	return res, nil
}
