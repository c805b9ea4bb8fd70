package input

// KeyCode names a key on a US 104-key QWERTY keyboard, in row order.
type KeyCode int

const (
	KeyUnknown KeyCode = iota

	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause

	KeyGrave
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNum0
	KeyMinus
	KeyEquals
	KeyBackSlash
	KeyBackspace
	KeyInsert
	KeyHome
	KeyPageUp
	KeyNumLock
	KeyNumpadDivide
	KeyNumpadMultiply
	KeyNumpadSubtract

	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd

	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyQuote
	KeyEnter
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6

	KeyLeftShift
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeyForwardSlash
	KeyRightShift
	KeyUpArrow
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpadEnter

	KeyLeftControl
	KeyLeftSuper
	KeyLeftAlt
	KeySpace
	KeyRightAlt
	KeyRightSuper
	KeyRightControl
	KeyLeftArrow
	KeyDownArrow
	KeyRightArrow
	KeyNumpad0
	KeyNumpadDecimal

	keyCodeCount
)

// Known reports whether k is a named key.
func (k KeyCode) Known() bool {
	return k > KeyUnknown && k < keyCodeCount
}
