package availability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	occupants []schedule.Occupant

	// workHours[doctorID][weekday]; missing entry means day off.
	workHours map[uint]map[int]schedule.WorkInterval

	doctors  []models.Doctor
	services map[uint][]models.Service

	bookingCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		workHours: map[uint]map[int]schedule.WorkInterval{},
		services:  map[uint][]models.Service{},
	}
}

func (f *fakeRepo) setWorkHours(doctorID uint, weekday int, start, end string) {
	s, _ := schedule.ParseTimeOfDay(start)
	e, _ := schedule.ParseTimeOfDay(end)
	if f.workHours[doctorID] == nil {
		f.workHours[doctorID] = map[int]schedule.WorkInterval{}
	}
	f.workHours[doctorID][weekday] = schedule.WorkInterval{Start: s, End: e}
}

func (f *fakeRepo) BookingsInRange(
	_ context.Context,
	start, end time.Time,
	statuses []schedule.Status,
	doctorID *uint,
) ([]schedule.Occupant, error) {

	f.bookingCalls++

	allowed := map[schedule.Status]bool{}
	for _, s := range statuses {
		allowed[s] = true
	}

	var out []schedule.Occupant
	for _, oc := range f.occupants {
		if oc.At.Before(start) || !oc.At.Before(end) {
			continue
		}
		if !allowed[oc.Status] {
			continue
		}
		if doctorID != nil {
			if oc.DoctorID == nil || *oc.DoctorID != *doctorID {
				continue
			}
		}
		out = append(out, oc)
	}
	return out, nil
}

func (f *fakeRepo) WorkHoursForWeekday(
	_ context.Context,
	doctorID uint,
	weekday int,
) (*schedule.WorkInterval, error) {

	wi, ok := f.workHours[doctorID][weekday]
	if !ok {
		return nil, nil
	}
	return &wi, nil
}

func (f *fakeRepo) ListDoctorWorkHours(
	_ context.Context,
	doctorID uint,
) ([]models.DoctorWorkHours, error) {

	var rows []models.DoctorWorkHours
	for weekday := 0; weekday <= 6; weekday++ {
		wi, ok := f.workHours[doctorID][weekday]
		if !ok {
			continue
		}
		rows = append(rows, models.DoctorWorkHours{
			DoctorID:  doctorID,
			Weekday:   weekday,
			StartTime: wi.Start.String(),
			EndTime:   wi.End.String(),
		})
	}
	return rows, nil
}

func (f *fakeRepo) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return &f.doctors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListDoctors(_ context.Context, activeOnly bool) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRepo) ListDoctorServices(_ context.Context, doctorID uint) ([]models.Service, error) {
	return f.services[doctorID], nil
}

func (f *fakeRepo) FindDoctorByName(_ context.Context, name string) (*models.Doctor, error) {
	for i := range f.doctors {
		if strings.EqualFold(f.doctors[i].Name, name) {
			return &f.doctors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FilterDoctorsByService(_ context.Context, service string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		for _, s := range f.services[d.ID] {
			if strings.Contains(strings.ToLower(s.Name), strings.ToLower(service)) {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

var _ schedule.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

// monday is 2024-06-10, a Monday.
var monday = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func occupant(d time.Time, hh, mm int, status schedule.Status, doctorID *uint) schedule.Occupant {
	return schedule.Occupant{
		At:       time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, d.Location()),
		Status:   status,
		DoctorID: doctorID,
	}
}

func clinicHours() schedule.WorkInterval {
	s, _ := schedule.ParseTimeOfDay("09:00")
	e, _ := schedule.ParseTimeOfDay("17:00")
	return schedule.WorkInterval{Start: s, End: e}
}

func uintPtr(v uint) *uint { return &v }

// ======================================================
// COMPUTE DAY
// ======================================================

func TestComputeDay_ClinicHours(t *testing.T) {
	repo := newFakeRepo()
	repo.occupants = []schedule.Occupant{
		occupant(monday, 9, 30, schedule.StatusApproved, nil),
	}

	uc := NewComputeDay(repo)

	s, _ := schedule.ParseTimeOfDay("09:00")
	e, _ := schedule.ParseTimeOfDay("10:00")

	got, err := uc.Execute(context.Background(), ComputeDayInput{
		Date:           monday,
		ClinicHours:    schedule.WorkInterval{Start: s, End: e},
		SlotMinutes:    30,
		Capacity:       1,
		IncludePending: true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got.Date != "2024-06-10" {
		t.Fatalf("date = %q", got.Date)
	}
	if len(got.Free) != 1 || got.Free[0] != "09:00-09:30" {
		t.Fatalf("free = %v, want [09:00-09:30]", got.Free)
	}
}

func TestComputeDay_DayOffSkipsBookingLookup(t *testing.T) {
	repo := newFakeRepo()
	repo.setWorkHours(7, 1, "09:00", "17:00") // Monday only

	uc := NewComputeDay(repo)

	// 2024-06-11 is a Tuesday: no template row.
	tuesday := monday.AddDate(0, 0, 1)

	got, err := uc.Execute(context.Background(), ComputeDayInput{
		Date:        tuesday,
		DoctorID:    uintPtr(7),
		SlotMinutes: 30,
		Capacity:    1,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got.Free == nil || len(got.Free) != 0 {
		t.Fatalf("day off must yield empty non-nil free, got %v", got.Free)
	}
	if repo.bookingCalls != 0 {
		t.Fatalf("day off must not query bookings, got %d calls", repo.bookingCalls)
	}
}

func TestComputeDay_DoctorFilter(t *testing.T) {
	repo := newFakeRepo()
	repo.setWorkHours(7, 1, "09:00", "10:00")
	repo.occupants = []schedule.Occupant{
		occupant(monday, 9, 0, schedule.StatusApproved, uintPtr(7)),
		occupant(monday, 9, 30, schedule.StatusApproved, uintPtr(8)), // other doctor
		occupant(monday, 9, 30, schedule.StatusApproved, nil),       // unassigned
	}

	uc := NewComputeDay(repo)

	got, err := uc.Execute(context.Background(), ComputeDayInput{
		Date:        monday,
		DoctorID:    uintPtr(7),
		SlotMinutes: 30,
		Capacity:    1,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	// Only doctor 7's own 09:00 booking counts; 09:30 stays free.
	if len(got.Free) != 1 || got.Free[0] != "09:30-10:00" {
		t.Fatalf("free = %v, want [09:30-10:00]", got.Free)
	}
}

func TestComputeDay_PendingSemantics(t *testing.T) {
	repo := newFakeRepo()
	repo.occupants = []schedule.Occupant{
		occupant(monday, 9, 0, schedule.StatusPending, nil),
		occupant(monday, 9, 30, schedule.StatusRejected, nil),
	}

	uc := NewComputeDay(repo)

	s, _ := schedule.ParseTimeOfDay("09:00")
	e, _ := schedule.ParseTimeOfDay("10:00")
	in := ComputeDayInput{
		Date:           monday,
		ClinicHours:    schedule.WorkInterval{Start: s, End: e},
		SlotMinutes:    30,
		Capacity:       1,
		IncludePending: true,
	}

	got, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// Pending occupies, rejected never does.
	if len(got.Free) != 1 || got.Free[0] != "09:30-10:00" {
		t.Fatalf("includePending: free = %v", got.Free)
	}

	in.IncludePending = false
	got, err = uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(got.Free) != 2 {
		t.Fatalf("approved only: free = %v", got.Free)
	}
}

// ======================================================
// COMPUTE RANGE
// ======================================================

func TestComputeRange_SingleLookupPartitionedByDay(t *testing.T) {
	repo := newFakeRepo()
	repo.occupants = []schedule.Occupant{
		occupant(monday, 9, 0, schedule.StatusApproved, nil),
		occupant(monday.AddDate(0, 0, 1), 9, 30, schedule.StatusApproved, nil),
	}

	uc := NewComputeRange(repo, func() time.Time { return monday.Add(8 * time.Hour) })

	s, _ := schedule.ParseTimeOfDay("09:00")
	e, _ := schedule.ParseTimeOfDay("10:00")

	days, err := uc.Execute(context.Background(), ComputeRangeInput{
		DaysAhead:      2,
		ClinicHours:    schedule.WorkInterval{Start: s, End: e},
		SlotMinutes:    30,
		Capacity:       1,
		IncludePending: true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("daysAhead 2 must yield 3 days, got %d", len(days))
	}
	if repo.bookingCalls != 1 {
		t.Fatalf("range must use one booking lookup, got %d", repo.bookingCalls)
	}

	if days[0].Date != "2024-06-10" || len(days[0].Free) != 1 || days[0].Free[0] != "09:30-10:00" {
		t.Fatalf("day 0 = %+v", days[0])
	}
	if days[1].Date != "2024-06-11" || len(days[1].Free) != 1 || days[1].Free[0] != "09:00-09:30" {
		t.Fatalf("day 1 = %+v", days[1])
	}
	if days[2].Date != "2024-06-12" || len(days[2].Free) != 2 {
		t.Fatalf("day 2 = %+v", days[2])
	}
}

func TestComputeRange_ZeroDaysAheadIsTodayOnly(t *testing.T) {
	repo := newFakeRepo()
	uc := NewComputeRange(repo, func() time.Time { return monday })

	days, err := uc.Execute(context.Background(), ComputeRangeInput{
		DaysAhead:   0,
		ClinicHours: clinicHours(),
		SlotMinutes: 30,
		Capacity:    1,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2024-06-10" {
		t.Fatalf("got %+v", days)
	}
}

// ======================================================
// DOCTOR DAYS
// ======================================================

func TestDoctorDays_LabelsAndPerDoctorDays(t *testing.T) {
	repo := newFakeRepo()
	repo.doctors = []models.Doctor{
		{ID: 7, Name: "Drg. Andi", Active: true},
	}
	repo.services[7] = []models.Service{{ID: 1, Name: "Scaling"}}
	repo.setWorkHours(7, 1, "09:00", "10:00") // Monday only

	day := NewComputeDay(repo)
	uc := NewDoctorDays(repo, day, func() time.Time { return monday })

	out, err := uc.Execute(context.Background(), DoctorDaysInput{
		DaysAhead:   1,
		SlotMinutes: 30,
		Capacity:    1,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("got %d doctors", len(out))
	}

	doc := out[0]
	if doc.DoctorID != 7 || doc.DoctorName != "Drg. Andi" {
		t.Fatalf("doctor = %+v", doc)
	}
	if len(doc.Services) != 1 || doc.Services[0] != "Scaling" {
		t.Fatalf("services = %v", doc.Services)
	}
	if len(doc.Days) != 2 {
		t.Fatalf("days = %d", len(doc.Days))
	}

	if doc.Days[0].Label != "Senin, 10 Juni" {
		t.Fatalf("label = %q", doc.Days[0].Label)
	}
	if len(doc.Days[0].Free) != 2 {
		t.Fatalf("monday free = %v", doc.Days[0].Free)
	}
	// Tuesday has no template: day off, empty free list.
	if len(doc.Days[1].Free) != 0 {
		t.Fatalf("tuesday free = %v", doc.Days[1].Free)
	}
}

// ======================================================
// DOCTOR SUMMARY
// ======================================================

func TestDoctorSummary(t *testing.T) {
	repo := newFakeRepo()
	repo.doctors = []models.Doctor{
		{ID: 7, Name: "Drg. Andi", Specialization: "Konservasi Gigi", Active: true},
		{ID: 8, Name: "Drg. Bunga", Active: false},
	}
	repo.services[7] = []models.Service{{ID: 1, Name: "Scaling"}}
	repo.setWorkHours(7, 1, "09:00", "17:00")

	uc := NewDoctorSummary(repo)

	out, err := uc.Execute(context.Background(), true)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("activeOnly: got %d doctors", len(out))
	}

	doc := out[0]
	if doc.Specialization == nil || *doc.Specialization != "Konservasi Gigi" {
		t.Fatalf("specialization = %v", doc.Specialization)
	}
	if len(doc.WorkHours) != 1 {
		t.Fatalf("workHours = %+v", doc.WorkHours)
	}
	wh := doc.WorkHours[0]
	if wh.Day != "Senin" || wh.Start != "09:00" || wh.End != "17:00" || wh.DayOfWeek != 1 {
		t.Fatalf("workHours[0] = %+v", wh)
	}

	out, err = uc.Execute(context.Background(), false)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("all: got %d doctors", len(out))
	}
	if out[1].Specialization != nil {
		t.Fatalf("empty specialization must be nil, got %v", out[1].Specialization)
	}
}

// ======================================================
// VALIDATE SLOT
// ======================================================

func TestValidateSlot_Reasons(t *testing.T) {
	repo := newFakeRepo()
	repo.setWorkHours(7, 1, "09:00", "10:00")
	repo.occupants = []schedule.Occupant{
		occupant(monday, 9, 0, schedule.StatusApproved, uintPtr(7)),
	}

	day := NewComputeDay(repo)
	uc := NewValidateSlot(repo, day)

	check := func(date time.Time, hh, mm int) dtoResult {
		tod := schedule.TimeOfDay{Hour: hh, Minute: mm}
		res, err := uc.Execute(context.Background(), ValidateSlotInput{
			DoctorID:       7,
			Date:           date,
			Time:           tod,
			SlotMinutes:    30,
			Capacity:       1,
			IncludePending: true,
		})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		return dtoResult{res.Available, res.Reason}
	}

	// Tuesday: no template row.
	if got := check(monday.AddDate(0, 0, 1), 9, 0); got != (dtoResult{false, ReasonNotWorkingToday}) {
		t.Fatalf("tuesday = %+v", got)
	}

	// 09:45 slot would end at 10:15, past work end.
	if got := check(monday, 9, 45); got != (dtoResult{false, ReasonOutsideWorkHours}) {
		t.Fatalf("outside = %+v", got)
	}

	// 09:00 is occupied.
	if got := check(monday, 9, 0); got != (dtoResult{false, ReasonSlotUnavailable}) {
		t.Fatalf("occupied = %+v", got)
	}

	// 09:30 is free.
	if got := check(monday, 9, 30); got != (dtoResult{true, ""}) {
		t.Fatalf("free = %+v", got)
	}
}

type dtoResult struct {
	available bool
	reason    string
}

// The slot verdict must always agree with the day view: a slot is
// available exactly when its label appears in ComputeDay().Free.
func TestValidateSlot_AgreesWithComputeDay(t *testing.T) {
	repo := newFakeRepo()
	repo.setWorkHours(7, 1, "09:00", "12:00")
	repo.occupants = []schedule.Occupant{
		occupant(monday, 9, 30, schedule.StatusApproved, uintPtr(7)),
		occupant(monday, 11, 0, schedule.StatusPending, uintPtr(7)),
	}

	day := NewComputeDay(repo)
	uc := NewValidateSlot(repo, day)

	avail, err := day.Execute(context.Background(), ComputeDayInput{
		Date:           monday,
		DoctorID:       uintPtr(7),
		SlotMinutes:    30,
		Capacity:       1,
		IncludePending: true,
	})
	if err != nil {
		t.Fatalf("compute day: %v", err)
	}

	freeSet := map[string]bool{}
	for _, label := range avail.Free {
		freeSet[label] = true
	}

	for hh := 9; hh < 12; hh++ {
		for _, mm := range []int{0, 30} {
			res, err := uc.Execute(context.Background(), ValidateSlotInput{
				DoctorID:       7,
				Date:           monday,
				Time:           schedule.TimeOfDay{Hour: hh, Minute: mm},
				SlotMinutes:    30,
				Capacity:       1,
				IncludePending: true,
			})
			if err != nil {
				t.Fatalf("validate %02d:%02d: %v", hh, mm, err)
			}
			if res.Available != freeSet[res.SlotLabel] {
				t.Fatalf("slot %s: validate says %v, day view says %v",
					res.SlotLabel, res.Available, freeSet[res.SlotLabel])
			}
		}
	}
}
