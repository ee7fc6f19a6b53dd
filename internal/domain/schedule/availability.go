package schedule

import "time"

// FreeSlots partitions the work interval on the given date into fixed-size
// slots and returns those with fewer than capacity occupants.
//
// Slots are chronological, pairwise disjoint and exactly slotMinutes long;
// a trailing remainder shorter than slotMinutes is dropped, never truncated.
// An occupant counts against a slot when its instant falls in [start, end).
func FreeSlots(
	date time.Time,
	w WorkInterval,
	slotMinutes int,
	capacity int,
	occupants []Occupant,
) []Slot {

	workStart := w.Start.On(date)
	workEnd := w.End.On(date)

	step := time.Duration(slotMinutes) * time.Minute

	var free []Slot

	for cur := workStart; !cur.Add(step).After(workEnd); cur = cur.Add(step) {
		slotStart := cur
		slotEnd := cur.Add(step)

		count := 0
		for _, oc := range occupants {
			if !oc.At.Before(slotStart) && oc.At.Before(slotEnd) {
				count++
			}
		}

		if count < capacity {
			free = append(free, Slot{Start: slotStart, End: slotEnd})
		}
	}

	return free
}

// Labels maps slots to their wire form, always non-nil so the JSON
// encoding is [] rather than null on empty days.
func Labels(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Label())
	}
	return out
}
