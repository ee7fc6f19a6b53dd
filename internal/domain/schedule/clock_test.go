package schedule

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:05")
	if err != nil {
		t.Fatalf("parse 09:05: %v", err)
	}
	if got.Hour != 9 || got.Minute != 5 {
		t.Fatalf("got %+v", got)
	}

	for _, bad := range []string{"", "9", "9:00:00", "24:00", "12:60", "ab:cd", "12-30"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("parse %q: expected error", bad)
		}
	}
}

func TestTimeOfDayOn(t *testing.T) {
	d := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	got := TimeOfDay{Hour: 14, Minute: 30}.On(d)

	want := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	a := TimeOfDay{Hour: 9, Minute: 0}
	b := TimeOfDay{Hour: 9, Minute: 30}
	c := TimeOfDay{Hour: 17, Minute: 0}

	if !a.Before(b) || !b.Before(c) {
		t.Fatal("ordering broken")
	}
	if b.Before(a) || a.Before(a) {
		t.Fatal("Before must be strict")
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2024, time.June, 3, 15, 4, 5, 0, time.UTC)
	if got := DateKey(d); got != "2024-06-03" {
		t.Fatalf("got %q", got)
	}
}

func TestLabelForDate(t *testing.T) {
	// 2024-06-10 is a Monday.
	d := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if got := LabelForDate(d); got != "Senin, 10 Juni" {
		t.Fatalf("got %q", got)
	}

	// 2027-10-18 is also a Monday, in October.
	d = time.Date(2027, time.October, 18, 0, 0, 0, 0, time.UTC)
	if got := LabelForDate(d); got != "Senin, 18 Oktober" {
		t.Fatalf("got %q", got)
	}
}

func TestDayName(t *testing.T) {
	if got := DayName(0); got != "Minggu" {
		t.Fatalf("weekday 0 = %q", got)
	}
	if got := DayName(6); got != "Sabtu" {
		t.Fatalf("weekday 6 = %q", got)
	}
	if got := DayName(7); got != "" {
		t.Fatalf("weekday 7 = %q", got)
	}
}
