package validators

import "testing"

func TestIsDateShape(t *testing.T) {
	for _, ok := range []string{"2024-06-10", "1999-01-01"} {
		if !IsDateShape(ok) {
			t.Fatalf("%q should match", ok)
		}
	}
	for _, bad := range []string{"", "2024-6-10", "10-06-2024", "2024/06/10", "2024-06-10T00:00"} {
		if IsDateShape(bad) {
			t.Fatalf("%q should not match", bad)
		}
	}
}

func TestIsTimeShape(t *testing.T) {
	for _, ok := range []string{"09:00", "23:59"} {
		if !IsTimeShape(ok) {
			t.Fatalf("%q should match", ok)
		}
	}
	for _, bad := range []string{"", "9:00", "09:00:00", "0900", "09.00"} {
		if IsTimeShape(bad) {
			t.Fatalf("%q should not match", bad)
		}
	}
}
