package core

import (
	"testing"
	"time"
)

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame
	if f.Has(ActionDash) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionDash)
	f.Set(ActionLeft)
	if !f.Has(ActionDash) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionRight) {
		t.Error("unset action reported as active")
	}

	f.Clear()
	if f.Has(ActionDash) || f.Has(ActionLeft) {
		t.Error("Clear should remove all actions")
	}
}

func TestKeyStateHoldWindow(t *testing.T) {
	k := NewKeyState(100 * time.Millisecond)
	start := time.Unix(100, 0)

	k.Touch("a", start)

	tests := []struct {
		name string
		at   time.Duration
		held bool
	}{
		{"immediately", 0, true},
		{"inside window", 99 * time.Millisecond, true},
		{"window elapsed", 100 * time.Millisecond, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := k.Held("a", start.Add(tc.at)); got != tc.held {
				t.Errorf("Held() = %v, expected %v", got, tc.held)
			}
		})
	}

	k.Touch("a", start.Add(200*time.Millisecond))
	if !k.Held("a", start.Add(250*time.Millisecond)) {
		t.Error("repeat should extend the hold")
	}
}

func TestKeyStateReset(t *testing.T) {
	k := NewKeyState(50 * time.Millisecond)
	now := time.Unix(5, 0)

	k.Touch("d", now)
	k.Touch("x", now)
	if k.Held("left", now) {
		t.Error("untouched key reported as held")
	}

	k.Reset()
	if k.Held("x", now) || k.Held("d", now) {
		t.Error("Reset should release every key")
	}
}

func TestClocks(t *testing.T) {
	fixed := NewFixedClock(16 * time.Millisecond)
	if fixed.Tick() != 16*time.Millisecond || fixed.Tick() != 16*time.Millisecond {
		t.Error("FixedClock should return the same step every tick")
	}

	base := time.Unix(1000, 0)
	current := base
	wall := &WallClock{now: func() time.Time { return current }}
	if dt := wall.Tick(); dt != 0 {
		t.Errorf("first wall tick = %v, expected 0", dt)
	}
	current = base.Add(20 * time.Millisecond)
	if dt := wall.Tick(); dt != 20*time.Millisecond {
		t.Errorf("second wall tick = %v, expected 20ms", dt)
	}
	wall.Reset()
	current = base.Add(time.Second)
	if dt := wall.Tick(); dt != 0 {
		t.Errorf("tick after Reset = %v, expected 0", dt)
	}
}
