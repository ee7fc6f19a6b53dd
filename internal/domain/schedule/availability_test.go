package schedule

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(date time.Time, hh, mm int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hh, mm, 0, 0, date.Location())
}

func interval(sh, sm, eh, em int) WorkInterval {
	return WorkInterval{
		Start: TimeOfDay{Hour: sh, Minute: sm},
		End:   TimeOfDay{Hour: eh, Minute: em},
	}
}

func TestFreeSlots_PartitionsWorkInterval(t *testing.T) {
	d := day(2024, time.June, 10)

	slots := FreeSlots(d, interval(9, 0, 17, 0), 30, 1, nil)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for 09:00-17:00 at 30m, got %d", len(slots))
	}

	step := 30 * time.Minute
	for i, s := range slots {
		if s.End.Sub(s.Start) != step {
			t.Fatalf("slot %d is %s long, want %s", i, s.End.Sub(s.Start), step)
		}
		if i > 0 && !slots[i-1].End.Equal(s.Start) {
			t.Fatalf("slot %d does not start where slot %d ends", i, i-1)
		}
	}

	if got := slots[0].Label(); got != "09:00-09:30" {
		t.Fatalf("first slot label = %q", got)
	}
	if got := slots[15].Label(); got != "16:30-17:00" {
		t.Fatalf("last slot label = %q", got)
	}
}

func TestFreeSlots_DropsTrailingRemainder(t *testing.T) {
	d := day(2024, time.June, 10)

	// 09:00-17:05 still yields 16 slots: the 5-minute tail is dropped,
	// never emitted as a short slot.
	slots := FreeSlots(d, interval(9, 0, 17, 5), 30, 1, nil)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if got := slots[15].Label(); got != "16:30-17:00" {
		t.Fatalf("last slot label = %q", got)
	}
}

func TestFreeSlots_CapacityBoundary(t *testing.T) {
	d := day(2024, time.June, 10)
	w := interval(9, 0, 10, 0)

	occupied := []Occupant{
		{At: at(d, 9, 0), Status: StatusApproved},
		{At: at(d, 9, 10), Status: StatusApproved},
	}

	// capacity 2: the 09:00 slot holds exactly 2 occupants, so it is full.
	slots := FreeSlots(d, w, 30, 2, occupied)
	if len(slots) != 1 || slots[0].Label() != "09:30-10:00" {
		t.Fatalf("capacity 2: got %v", Labels(slots))
	}

	// capacity 3: one seat left, slot stays free.
	slots = FreeSlots(d, w, 30, 3, occupied)
	if len(slots) != 2 {
		t.Fatalf("capacity 3: got %v", Labels(slots))
	}
}

func TestFreeSlots_OccupancyIsHalfOpen(t *testing.T) {
	d := day(2024, time.June, 10)
	w := interval(9, 0, 10, 0)

	// A booking at exactly 09:30 belongs to the second slot, not the first.
	occupied := []Occupant{{At: at(d, 9, 30), Status: StatusApproved}}

	slots := FreeSlots(d, w, 30, 1, occupied)
	if len(slots) != 1 || slots[0].Label() != "09:00-09:30" {
		t.Fatalf("got %v, want [09:00-09:30]", Labels(slots))
	}
}

func TestFreeSlots_InvertedIntervalYieldsNothing(t *testing.T) {
	d := day(2024, time.June, 10)

	slots := FreeSlots(d, interval(17, 0, 9, 0), 30, 1, nil)
	if len(slots) != 0 {
		t.Fatalf("inverted interval produced %d slots", len(slots))
	}
}

func TestFreeSlots_IntervalShorterThanSlot(t *testing.T) {
	d := day(2024, time.June, 10)

	slots := FreeSlots(d, interval(9, 0, 9, 20), 30, 1, nil)
	if len(slots) != 0 {
		t.Fatalf("20-minute window produced %d 30-minute slots", len(slots))
	}
}

func TestLabels_EmptyIsNonNil(t *testing.T) {
	labels := Labels(nil)
	if labels == nil {
		t.Fatal("Labels(nil) must be an empty slice, not nil")
	}
	if len(labels) != 0 {
		t.Fatalf("got %v", labels)
	}
}

func TestOccupyingStatuses(t *testing.T) {
	with := OccupyingStatuses(true)
	if len(with) != 2 {
		t.Fatalf("includePending: got %v", with)
	}

	without := OccupyingStatuses(false)
	if len(without) != 1 || without[0] != StatusApproved {
		t.Fatalf("approved only: got %v", without)
	}

	for _, s := range with {
		if s == StatusRejected {
			t.Fatal("rejected must never occupy")
		}
	}
}

func TestTransitions_PendingOnly(t *testing.T) {
	if err := CanApprove(StatusPending); err != nil {
		t.Fatalf("pending -> approved: %v", err)
	}
	if err := CanReject(StatusPending); err != nil {
		t.Fatalf("pending -> rejected: %v", err)
	}
	if err := CanApprove(StatusRejected); err == nil {
		t.Fatal("rejected -> approved must fail")
	}
	if err := CanReject(StatusApproved); err == nil {
		t.Fatal("approved -> rejected must fail")
	}
}
