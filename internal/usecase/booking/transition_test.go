package booking

import (
	"context"
	"testing"

	"github.com/konsultaklinik/clinic-scheduler/internal/audit"
	"github.com/konsultaklinik/clinic-scheduler/internal/httperr"
	"github.com/konsultaklinik/clinic-scheduler/internal/models"
)

type fakeBookingRepo struct {
	bookings map[uint]*models.Booking
	updated  []uint
}

func (f *fakeBookingRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.bookings[b.ID] = b
	f.updated = append(f.updated, b.ID)
	return nil
}

type captureDispatcher struct {
	events []audit.Event
}

func (d *captureDispatcher) Dispatch(ev audit.Event) {
	d.events = append(d.events, ev)
}

func TestApproveBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[uint]*models.Booking{
		1: {ID: 1, Status: "pending"},
	}}
	disp := &captureDispatcher{}

	uc := NewApproveBooking(repo, disp)

	actor := uint(9)
	b, err := uc.Execute(context.Background(), 1, &actor)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if b.Status != "approved" {
		t.Fatalf("status = %q", b.Status)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("updated %d bookings", len(repo.updated))
	}
	if len(disp.events) != 1 || disp.events[0].Action != "booking_approved" {
		t.Fatalf("events = %+v", disp.events)
	}
	if disp.events[0].UserID == nil || *disp.events[0].UserID != 9 {
		t.Fatalf("actor = %v", disp.events[0].UserID)
	}
}

func TestRejectBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[uint]*models.Booking{
		1: {ID: 1, Status: "pending"},
	}}
	disp := &captureDispatcher{}

	uc := NewRejectBooking(repo, disp)

	b, err := uc.Execute(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if b.Status != "rejected" {
		t.Fatalf("status = %q", b.Status)
	}
	if len(disp.events) != 1 || disp.events[0].Action != "booking_rejected" {
		t.Fatalf("events = %+v", disp.events)
	}
}

func TestTransition_NonPendingRejected(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[uint]*models.Booking{
		1: {ID: 1, Status: "approved"},
		2: {ID: 2, Status: "rejected"},
	}}
	disp := &captureDispatcher{}

	approve := NewApproveBooking(repo, disp)
	reject := NewRejectBooking(repo, disp)

	if _, err := approve.Execute(context.Background(), 2, nil); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("approve rejected booking: err = %v", err)
	}
	if _, err := reject.Execute(context.Background(), 1, nil); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("reject approved booking: err = %v", err)
	}

	if len(repo.updated) != 0 {
		t.Fatal("terminal bookings must not be written")
	}
	if len(disp.events) != 0 {
		t.Fatal("failed transitions must not be audited")
	}
}

func TestTransition_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[uint]*models.Booking{}}
	uc := NewApproveBooking(repo, &captureDispatcher{})

	if _, err := uc.Execute(context.Background(), 42, nil); !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("err = %v", err)
	}
}
