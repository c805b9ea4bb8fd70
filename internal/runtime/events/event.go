// Package events provides the type-erased event bus shared by the window
// backend and user code.
//
// Any concrete value can travel on a Channel. Consumers recover the concrete
// type with As or a type switch; a value of another type simply does not
// match, which lets independently written packages multiplex their own event
// families over one bus without agreeing on a shared enumeration.
package events

import "fmt"

// Event is a type-erased event value.
type Event = any

// Started is emitted once, when the platform first reports it is ready.
type Started struct{}

// Exited is the last event a loop ever emits.
type Exited struct{}

// Quit asks the event loop to stop. Once a Quit has been processed every
// further Quit is a no-op.
type Quit struct{}

// EventsCleared is emitted once per tick after the queue has been drained.
// It is the point at which it is safe to redraw.
type EventsCleared struct{}

// As recovers the concrete value of ev. The cast either succeeds completely
// or reports false.
func As[T any](ev Event) (T, bool) {
	typed, ok := ev.(T)
	return typed, ok
}

// Is reports whether ev holds a T.
func Is[T any](ev Event) bool {
	_, ok := ev.(T)
	return ok
}

// TypeName returns the runtime type identity of ev, for example
// "window.Resized".
func TypeName(ev Event) string {
	if ev == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", ev)
}

// Describe renders ev for diagnostics.
func Describe(ev Event) string {
	return fmt.Sprintf("%s%+v", TypeName(ev), ev)
}
