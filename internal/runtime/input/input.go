// Package input defines the fixed-shape input values a backend's input
// translation layer produces. The event loop forwards them untouched.
package input

import "fmt"

// ButtonState is the state of a key or mouse button.
type ButtonState int

const (
	Pressed ButtonState = iota
	Released
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a mouse button. Buttons past MouseBack are reported
// through OtherMouseButton.
type MouseButton uint32

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseForward
	MouseBack
	mouseOtherBase
)

// OtherMouseButton returns the MouseButton for a platform button code that
// has no named constant.
func OtherMouseButton(code uint32) MouseButton {
	return mouseOtherBase + MouseButton(code)
}

// Other returns the platform code of an unnamed button.
func (b MouseButton) Other() (uint32, bool) {
	if b < mouseOtherBase {
		return 0, false
	}
	return uint32(b - mouseOtherBase), true
}

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseForward:
		return "forward"
	case MouseBack:
		return "back"
	}
	code, _ := b.Other()
	return fmt.Sprintf("other(%d)", code)
}

// Input is one translated input value. The set of implementations is closed.
type Input interface {
	isInput()
}

// Keyboard is a key press or release. KeyCode is KeyUnknown when the key has
// no named code; Scancode is always the raw platform value.
type Keyboard struct {
	State    ButtonState
	Scancode uint32
	KeyCode  KeyCode
	IsRepeat bool
}

// MouseMove is the cursor position within a window.
type MouseMove struct {
	X, Y float32
}

// RawMouseMove is unaccelerated device motion.
type RawMouseMove struct {
	DeltaX, DeltaY float32
}

// MouseButtonInput is a mouse button press or release.
type MouseButtonInput struct {
	State  ButtonState
	Button MouseButton
}

// MouseScroll is a wheel movement in lines.
type MouseScroll struct {
	DeltaX, DeltaY float32
}

func (Keyboard) isInput()         {}
func (MouseMove) isInput()        {}
func (RawMouseMove) isInput()     {}
func (MouseButtonInput) isInput() {}
func (MouseScroll) isInput()      {}
