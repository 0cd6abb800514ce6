// Package sim holds the timer-driven engines behind the dashboard's
// simulated behavior: the agent security console and the booking workflow.
//
// Engines never sleep or own timers. Timed behavior is expressed as an
// ordered script of (delay, event) steps relative to a single trigger; the
// TUI maps steps onto timer commands, and tests apply them synchronously.
package sim

import "time"

// Step is one scheduled effect: apply Event after After has elapsed since
// the trigger. Scripts keep After monotonically increasing so application
// order equals scheduled order.
type Step struct {
	After time.Duration
	Event Event
}

// Event is an opaque effect applied back to the engine that produced it.
type Event interface {
	event()
}
