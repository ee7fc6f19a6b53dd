package clock

import "time"

// NowFunc lets range computations anchor "today" on an injected clock.
type NowFunc func() time.Time

func Now() time.Time {
	return time.Now()
}
