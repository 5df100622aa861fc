// Package input turns SDL's polled key/button state into edge-triggered
// press events, so holding a key or button fires a single toggle.
package input

import "github.com/veandco/go-sdl2/sdl"

// KeyPressTracker reports the rising edge of keyboard scancode presses.
type KeyPressTracker struct {
	pressed map[sdl.Scancode]bool
}

func NewKeyPressTracker() KeyPressTracker {
	return KeyPressTracker{pressed: make(map[sdl.Scancode]bool)}
}

// IsPressed reports whether scancode transitioned to pressed since the
// previous call with this keyState snapshot series.
func (kpt *KeyPressTracker) IsPressed(keyState []uint8, scancode sdl.Scancode) bool {
	down := int(scancode) < len(keyState) && keyState[scancode] != 0
	was := kpt.pressed[scancode]
	kpt.pressed[scancode] = down
	return down && !was
}

// MousePressTracker reports the rising edge of mouse button presses,
// keyed by SDL button mask (e.g. sdl.ButtonLMask()).
type MousePressTracker struct {
	pressed map[uint32]bool
}

func NewMousePressTracker() MousePressTracker {
	return MousePressTracker{pressed: make(map[uint32]bool)}
}

// IsPressed reports whether the masked button transitioned to pressed.
func (mpt *MousePressTracker) IsPressed(mouseState uint32, buttonMask uint32) bool {
	down := mouseState&buttonMask != 0
	was := mpt.pressed[buttonMask]
	mpt.pressed[buttonMask] = down
	return down && !was
}
