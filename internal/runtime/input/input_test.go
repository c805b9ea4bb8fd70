package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOtherMouseButtonRoundTrip(t *testing.T) {
	b := OtherMouseButton(7)
	code, ok := b.Other()
	assert.True(t, ok)
	assert.Equal(t, uint32(7), code)
	assert.Equal(t, "other(7)", b.String())

	_, ok = MouseRight.Other()
	assert.False(t, ok)
	assert.Equal(t, "right", MouseRight.String())
}

func TestKeyCodeKnown(t *testing.T) {
	assert.False(t, KeyUnknown.Known())
	assert.True(t, KeyEscape.Known())
	assert.True(t, KeyNumpadDecimal.Known())
	assert.False(t, keyCodeCount.Known())
}

func TestInputFamilyIsClosed(t *testing.T) {
	values := []Input{
		Keyboard{State: Pressed, Scancode: 30, KeyCode: KeyA},
		MouseMove{X: 10, Y: 20},
		RawMouseMove{DeltaX: 1, DeltaY: -1},
		MouseButtonInput{State: Released, Button: MouseLeft},
		MouseScroll{DeltaY: 1},
	}
	for _, v := range values {
		switch v.(type) {
		case Keyboard, MouseMove, RawMouseMove, MouseButtonInput, MouseScroll:
		default:
			t.Fatalf("unexpected input type %T", v)
		}
	}
	assert.Equal(t, "pressed", Pressed.String())
	assert.Equal(t, "released", Released.String())
}
