package availability

import (
	"context"

	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/dto"
)

// DoctorSummary is a configuration report, not an availability computation:
// per doctor, the assigned services and the full weekly template.
type DoctorSummary struct {
	repo schedule.Repository
}

func NewDoctorSummary(repo schedule.Repository) *DoctorSummary {
	return &DoctorSummary{repo: repo}
}

func (uc *DoctorSummary) Execute(
	ctx context.Context,
	activeOnly bool,
) ([]dto.DoctorSummaryDTO, error) {

	doctors, err := uc.repo.ListDoctors(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DoctorSummaryDTO, 0, len(doctors))

	for _, doc := range doctors {
		services, err := uc.repo.ListDoctorServices(ctx, doc.ID)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(services))
		for _, s := range services {
			names = append(names, s.Name)
		}

		rows, err := uc.repo.ListDoctorWorkHours(ctx, doc.ID)
		if err != nil {
			return nil, err
		}

		weekly := make([]dto.WorkHoursEntryDTO, 0, len(rows))
		for _, wh := range rows {
			weekly = append(weekly, dto.WorkHoursEntryDTO{
				Day:       schedule.DayName(wh.Weekday),
				Start:     wh.StartTime,
				End:       wh.EndTime,
				DayOfWeek: wh.Weekday,
			})
		}

		var spec *string
		if doc.Specialization != "" {
			s := doc.Specialization
			spec = &s
		}

		out = append(out, dto.DoctorSummaryDTO{
			DoctorID:       doc.ID,
			DoctorName:     doc.Name,
			Specialization: spec,
			Services:       names,
			WorkHours:      weekly,
		})
	}

	return out, nil
}
