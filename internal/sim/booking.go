package sim

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/autocare-ai/autocare/internal/model"
)

// Booking flow states.
const (
	StateIdle         = "idle"
	StateLoadingSlots = "loading_slots"
	StateSlotsVisible = "slots_visible"
	StateBooking      = "booking"
	StateConfirmed    = "confirmed"
)

// Booking flow events.
const (
	EventFetchSlots    = "fetch_slots"
	EventSlotsLoaded   = "slots_loaded"
	EventSlotsFailed   = "slots_failed"
	EventBook          = "book"
	EventBookConfirmed = "book_confirmed"
	EventBookFailed    = "book_failed"
)

// BookingRiskThreshold gates the priority-service flow: booking is offered
// only above this failure risk score.
const BookingRiskThreshold = 80.0

// CanStartBooking reports whether the priority-service flow is reachable for
// the given prediction and vehicle status. Vehicles already under maintenance
// never re-enter the flow.
func CanStartBooking(prediction *model.PredictionResult, status model.Status) bool {
	if prediction == nil || status == model.StatusMaintenance {
		return false
	}
	return prediction.FailureRiskScore > BookingRiskThreshold
}

// BookingFlow drives the maintenance-scheduling workflow:
//
//	idle -> loading_slots -> slots_visible -> booking -> confirmed
//
// Slot-fetch failure returns to idle, booking failure returns to
// slots_visible; both stay retryable. JobCardID is set only on confirmed.
type BookingFlow struct {
	fsm *fsm.FSM

	slots     []string
	center    model.ServiceCenter
	jobCardID string
	lastErr   string
}

// NewBookingFlow creates a flow in the idle state.
func NewBookingFlow() *BookingFlow {
	f := &BookingFlow{}
	f.fsm = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventFetchSlots, Src: []string{StateIdle}, Dst: StateLoadingSlots},
			{Name: EventSlotsLoaded, Src: []string{StateLoadingSlots}, Dst: StateSlotsVisible},
			{Name: EventSlotsFailed, Src: []string{StateLoadingSlots}, Dst: StateIdle},
			{Name: EventBook, Src: []string{StateSlotsVisible}, Dst: StateBooking},
			{Name: EventBookConfirmed, Src: []string{StateBooking}, Dst: StateConfirmed},
			{Name: EventBookFailed, Src: []string{StateBooking}, Dst: StateSlotsVisible},
		},
		fsm.Callbacks{},
	)
	return f
}

// State returns the current flow state.
func (f *BookingFlow) State() string { return f.fsm.Current() }

// Slots returns the fetched slot labels (may be empty in slots_visible).
func (f *BookingFlow) Slots() []string { return append([]string(nil), f.slots...) }

// Center returns the recommended service center.
func (f *BookingFlow) Center() model.ServiceCenter { return f.center }

// JobCardID is non-empty only in the confirmed state.
func (f *BookingFlow) JobCardID() string { return f.jobCardID }

// LastError returns the most recent failure notice, cleared on the next
// successful transition.
func (f *BookingFlow) LastError() string { return f.lastErr }

// FetchSlots enters loading_slots. The caller then issues the network call
// and reports back via SlotsLoaded or SlotsFailed.
func (f *BookingFlow) FetchSlots(ctx context.Context) error {
	if err := f.fsm.Event(ctx, EventFetchSlots); err != nil {
		return err
	}
	f.lastErr = ""
	return nil
}

// SlotsLoaded stores the availability reply and shows the slot list. An
// empty slot list is valid: the flow reaches slots_visible with nothing
// bookable.
func (f *BookingFlow) SlotsLoaded(ctx context.Context, slots *model.ScheduleSlots) error {
	if err := f.fsm.Event(ctx, EventSlotsLoaded); err != nil {
		return err
	}
	f.slots = append([]string(nil), slots.AvailableSlots...)
	f.center = slots.RecommendedCenter
	f.lastErr = ""
	return nil
}

// SlotsFailed reverts to idle with a visible, retryable error notice.
func (f *BookingFlow) SlotsFailed(ctx context.Context, notice string) error {
	if err := f.fsm.Event(ctx, EventSlotsFailed); err != nil {
		return err
	}
	f.lastErr = notice
	return nil
}

// Book enters the booking state for one selected slot.
func (f *BookingFlow) Book(ctx context.Context) error {
	return f.fsm.Event(ctx, EventBook)
}

// BookingResult applies the service-center reply: a confirmed reply stores
// the job card and finishes the flow, anything else reverts to slots_visible
// so the booking remains retryable.
func (f *BookingFlow) BookingResult(ctx context.Context, confirmation *model.BookingConfirmation) error {
	if confirmation != nil && confirmation.Confirmed() {
		if err := f.fsm.Event(ctx, EventBookConfirmed); err != nil {
			return err
		}
		f.jobCardID = confirmation.JobCardID
		f.lastErr = ""
		return nil
	}
	if err := f.fsm.Event(ctx, EventBookFailed); err != nil {
		return err
	}
	f.jobCardID = ""
	f.lastErr = "Booking was not confirmed by the service center."
	return nil
}
