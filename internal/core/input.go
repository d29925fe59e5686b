package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left while held
	ActionRight          // D, Right arrow - move right while held
	ActionDash           // Space, X - dash ability
	ActionStart          // Enter, S - start a session
	ActionRestart        // R - retry after game over
	ActionPause          // P - pause/unpause game
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDash:
		return "Dash"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one frame.
// Held actions (movement, dash) are present for every frame their key is
// down; one-shot actions (start, pause) only for the frame they were pressed.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// KeyState is the set of currently held keys, by key name.
//
// Terminals only report presses and auto-repeats, so Touch records the
// time a key was last seen and the key counts as held until the hold
// window passes without a repeat.
type KeyState struct {
	hold    time.Duration
	touched map[string]time.Time
}

// NewKeyState creates an empty key set with the given hold window.
func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{
		hold:    hold,
		touched: make(map[string]time.Time),
	}
}

// Touch records a press or repeat of a key at the given time.
func (k *KeyState) Touch(key string, now time.Time) {
	k.touched[key] = now
}

// Held reports whether the key is down at the given time.
func (k *KeyState) Held(key string, now time.Time) bool {
	last, ok := k.touched[key]
	if !ok {
		return false
	}
	if now.Sub(last) >= k.hold {
		delete(k.touched, key)
		return false
	}
	return true
}

// Reset releases every key.
func (k *KeyState) Reset() {
	for key := range k.touched {
		delete(k.touched, key)
	}
}
