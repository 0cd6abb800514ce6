package sim

import (
	"context"
	"testing"

	"github.com/autocare-ai/autocare/internal/model"
)

func TestCanStartBooking(t *testing.T) {
	t.Parallel()

	high := &model.PredictionResult{FailureRiskScore: 92}
	low := &model.PredictionResult{FailureRiskScore: 80}

	if !CanStartBooking(high, model.StatusCritical) {
		t.Error("risk 92 on a critical vehicle should offer booking")
	}
	if CanStartBooking(low, model.StatusCritical) {
		t.Error("threshold is strict: risk 80 must not offer booking")
	}
	if CanStartBooking(high, model.StatusMaintenance) {
		t.Error("vehicles already under maintenance must not re-enter booking")
	}
	if CanStartBooking(nil, model.StatusCritical) {
		t.Error("no prediction, no booking")
	}
}

func TestBookingFlow_HappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewBookingFlow()

	if f.State() != StateIdle {
		t.Fatalf("initial state = %q, want idle", f.State())
	}

	if err := f.FetchSlots(ctx); err != nil {
		t.Fatalf("FetchSlots: %v", err)
	}
	if err := f.SlotsLoaded(ctx, &model.ScheduleSlots{
		AvailableSlots:    []string{"Monday, 01 Sep at 10:00 AM", "Tuesday, 02 Sep at 11:00 AM"},
		RecommendedCenter: model.ServiceCenter{Name: "Hero MotoCorp Authorized Hub - Malad"},
	}); err != nil {
		t.Fatalf("SlotsLoaded: %v", err)
	}
	if f.State() != StateSlotsVisible || len(f.Slots()) != 2 {
		t.Fatalf("state %q with %d slots after load", f.State(), len(f.Slots()))
	}

	if err := f.Book(ctx); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := f.BookingResult(ctx, &model.BookingConfirmation{Status: "confirmed", JobCardID: "JC-1001"}); err != nil {
		t.Fatalf("BookingResult: %v", err)
	}

	if f.State() != StateConfirmed {
		t.Fatalf("final state = %q, want confirmed", f.State())
	}
	if f.JobCardID() != "JC-1001" {
		t.Fatalf("job card = %q, want JC-1001", f.JobCardID())
	}
}

func TestBookingFlow_SlotFetchFailureRevertsToIdle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewBookingFlow()

	if err := f.FetchSlots(ctx); err != nil {
		t.Fatalf("FetchSlots: %v", err)
	}
	if err := f.SlotsFailed(ctx, "backend unreachable"); err != nil {
		t.Fatalf("SlotsFailed: %v", err)
	}

	if f.State() != StateIdle {
		t.Fatalf("state after slot failure = %q, want idle", f.State())
	}
	if f.LastError() == "" {
		t.Fatal("slot failure must leave a visible error notice")
	}

	// The flow stays retryable.
	if err := f.FetchSlots(ctx); err != nil {
		t.Fatalf("retry FetchSlots: %v", err)
	}
	if f.LastError() != "" {
		t.Fatal("retry did not clear the error notice")
	}
}

func TestBookingFlow_BookingFailureStaysRetryable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewBookingFlow()

	f.FetchSlots(ctx)
	f.SlotsLoaded(ctx, &model.ScheduleSlots{AvailableSlots: []string{"slot-a"}})

	if err := f.Book(ctx); err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := f.BookingResult(ctx, &model.BookingConfirmation{Status: "rejected"}); err != nil {
		t.Fatalf("BookingResult: %v", err)
	}

	if f.State() != StateSlotsVisible {
		t.Fatalf("state after booking failure = %q, want slots_visible", f.State())
	}
	if f.JobCardID() != "" {
		t.Fatal("job card must be empty outside confirmed")
	}

	// Retry succeeds from slots_visible.
	if err := f.Book(ctx); err != nil {
		t.Fatalf("retry Book: %v", err)
	}
	if err := f.BookingResult(ctx, &model.BookingConfirmation{Status: "confirmed", JobCardID: "SRV-4411"}); err != nil {
		t.Fatalf("retry BookingResult: %v", err)
	}
	if f.State() != StateConfirmed || f.JobCardID() != "SRV-4411" {
		t.Fatalf("retry ended in %q with job card %q", f.State(), f.JobCardID())
	}
}

func TestBookingFlow_EmptySlotListIsVisible(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewBookingFlow()

	f.FetchSlots(ctx)
	if err := f.SlotsLoaded(ctx, &model.ScheduleSlots{}); err != nil {
		t.Fatalf("SlotsLoaded with zero slots: %v", err)
	}

	if f.State() != StateSlotsVisible {
		t.Fatalf("state = %q, want slots_visible with an empty list", f.State())
	}
	if len(f.Slots()) != 0 {
		t.Fatalf("slots = %v, want none", f.Slots())
	}
}

func TestBookingFlow_RejectsOutOfOrderEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewBookingFlow()

	if err := f.Book(ctx); err == nil {
		t.Fatal("Book from idle must fail")
	}
	if err := f.BookingResult(ctx, &model.BookingConfirmation{Status: "confirmed", JobCardID: "X"}); err == nil {
		t.Fatal("confirmation outside booking must fail")
	}
	if f.JobCardID() != "" {
		t.Fatal("rejected confirmation leaked a job card")
	}
	if f.State() != StateIdle {
		t.Fatalf("state mutated by rejected events: %q", f.State())
	}
}
