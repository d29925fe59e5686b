package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// Movement and dash keys come from the dodge config and are tracked as
// held keys; everything else is a one-shot command.
type KeyMapper struct {
	held map[string]core.Action
}

// NewKeyMapper creates a mapper for the given bindings.
func NewKeyMapper(in config.DodgeInput) *KeyMapper {
	km := &KeyMapper{held: make(map[string]core.Action)}
	bind := func(keys []string, a core.Action) {
		for _, k := range keys {
			km.held[k] = a
		}
	}
	bind(in.Left, core.ActionLeft)
	bind(in.Right, core.ActionRight)
	bind(in.Dash, core.ActionDash)
	return km
}

// DefaultKeyMapper uses the built-in bindings.
func DefaultKeyMapper() *KeyMapper {
	return NewKeyMapper(config.DefaultDodgeConfig().Input)
}

// IsHeld reports whether the key drives a held action.
func (km *KeyMapper) IsHeld(key string) bool {
	_, ok := km.held[key]
	return ok
}

// MapKey translates a key to a one-shot action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if km.IsHeld(key) {
		return core.ActionNone, false
	}

	switch key {
	case "enter", "s":
		return core.ActionStart, false
	case "r":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// Fill sets every held action whose key is down at now.
func (km *KeyMapper) Fill(keys *core.KeyState, now time.Time, frame *core.InputFrame) {
	for key, a := range km.held {
		if keys.Held(key, now) {
			frame.Set(a)
		}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
