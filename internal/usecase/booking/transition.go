package booking

import (
	"context"

	"github.com/konsultaklinik/clinic-scheduler/internal/audit"
	"github.com/konsultaklinik/clinic-scheduler/internal/domain/schedule"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

// Dispatcher is satisfied by *audit.Dispatcher.
type Dispatcher interface {
	Dispatch(ev audit.Event)
}

// Repository is the minimal booking access the transitions need.
type Repository interface {
	// GetBooking returns (nil, nil) when no booking has the id.
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
}

// ======================================================
// APPROVE
// ======================================================

type ApproveBooking struct {
	repo  Repository
	audit Dispatcher
}

func NewApproveBooking(repo Repository, dispatcher Dispatcher) *ApproveBooking {
	return &ApproveBooking{repo: repo, audit: dispatcher}
}

func (uc *ApproveBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actorID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := schedule.CanApprove(schedule.Status(b.Status)); err != nil {
		return nil, err
	}

	b.Status = string(schedule.StatusApproved)
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_approved",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// ======================================================
// REJECT
// ======================================================

type RejectBooking struct {
	repo  Repository
	audit Dispatcher
}

func NewRejectBooking(repo Repository, dispatcher Dispatcher) *RejectBooking {
	return &RejectBooking{repo: repo, audit: dispatcher}
}

func (uc *RejectBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actorID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := schedule.CanReject(schedule.Status(b.Status)); err != nil {
		return nil, err
	}

	b.Status = string(schedule.StatusRejected)
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_rejected",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
