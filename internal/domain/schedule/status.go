package schedule

import "github.com/konsultaklinik/clinic-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// OccupyingStatuses returns the statuses that count toward slot capacity.
// Approved bookings always occupy; pending only when the caller opts in.
// Rejected bookings never occupy.
func OccupyingStatuses(includePending bool) []Status {
	if includePending {
		return []Status{StatusApproved, StatusPending}
	}
	return []Status{StatusApproved}
}

// ===============================
// Transitions
// ===============================

// CanApprove / CanReject: only pending bookings move to a terminal status.
func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
