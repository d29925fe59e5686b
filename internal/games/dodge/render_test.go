package dodge

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

func TestRenderOverlays(t *testing.T) {
	cfg := quietConfig()
	s := NewSession(cfg, NewRNG(1), testW, testH)
	r := NewRenderer(cfg, nil, 1)
	screen := core.NewScreen(80, 24)

	r.Draw(screen, s, Frame{})
	if out := screen.String(); !strings.Contains(out, "Press Enter to start") {
		t.Errorf("idle frame missing start prompt:\n%s", out)
	}

	s.Start()
	r.Draw(screen, s, Frame{Best: 77})
	out := screen.String()
	for _, want := range []string{"Score: 0", "Best: 77", "Dash: Ready", "Press Space to dash"} {
		if !strings.Contains(out, want) {
			t.Errorf("running frame missing %q", want)
		}
	}

	r.Draw(screen, s, Frame{Paused: true})
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused frame missing overlay")
	}

	s.Step(0, Input{Dash: true})
	s.shield.Grant(6500)
	r.Draw(screen, s, Frame{})
	out = screen.String()
	if strings.Contains(out, "Press Space to dash") {
		t.Error("hint still shown after first dash")
	}
	if !strings.Contains(out, "Dash: 1.8s") || !strings.Contains(out, "Shield: 6s") {
		t.Errorf("HUD timers missing:\n%s", out)
	}

	s.blocks = append(s.blocks, onPlayer(s))
	s.dash = Dash{}
	s.shield.Consume()
	s.Step(0, Input{})
	r.Draw(screen, s, Frame{})
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("terminal frame missing game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := NewSession(cfg, NewRNG(1), 160, testH)
	screen := core.NewScreen(20, 24)
	NewRenderer(cfg, nil, 1).Draw(screen, s, Frame{})

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too small notice:\n%s", screen.String())
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	s := startedSession(cfg, 21)
	for range 400 {
		s.Step(1.0/60, Input{Left: true})
		if s.Over() {
			break
		}
	}
	s.Step(0, Input{Dash: true})
	s.shield.Grant(1000)

	before := s.Snapshot()
	blocks := append([]Block(nil), s.blocks...)
	coins := append([]Coin(nil), s.coins...)
	particles := append([]Particle(nil), s.particles...)

	r := NewRenderer(cfg, nil, 5)
	screen := core.NewScreen(80, 24)
	for range 10 {
		r.Draw(screen, s, Frame{Best: 3})
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("Draw() changed the session snapshot")
	}
	if !reflect.DeepEqual(blocks, append([]Block(nil), s.blocks...)) ||
		!reflect.DeepEqual(coins, append([]Coin(nil), s.coins...)) ||
		!reflect.DeepEqual(particles, append([]Particle(nil), s.particles...)) {
		t.Error("Draw() changed entities")
	}
}

func TestRenderBackdropShakes(t *testing.T) {
	cfg := quietConfig()
	cfg.Effects.ShakeMaxPx = 200
	s := startedSession(cfg, 1)
	s.shake = 1

	// Pick a seed whose first shake offset is not zero.
	var seed int64
	var ox, oy int
	for seed = 1; ox == 0 && oy == 0; seed++ {
		ox, oy = NewRenderer(cfg, nil, seed).shakeOffset(s.shake)
	}
	seed--

	r := NewRenderer(cfg, nil, seed)
	calm := core.NewScreen(80, 24)
	r.drawBackdrop(calm, s, 0, 0)
	shifted := core.NewScreen(80, 24)
	r.drawBackdrop(shifted, s, ox, oy)

	for y := range 24 {
		for x := range 80 {
			sx, sy := x+ox, y+oy
			if sx < 0 || sx >= 80 || sy < 0 || sy >= 24 {
				continue
			}
			if got, want := shifted.GetCell(sx, sy), calm.GetCell(x, y); got != want {
				t.Fatalf("backdrop cell (%d, %d) = %+v, expected %+v moved by (%d, %d)", sx, sy, got, want, ox, oy)
			}
		}
	}

	screen := core.NewScreen(80, 24)
	NewRenderer(cfg, nil, seed).Draw(screen, s, Frame{})
	dots := 0
	for y := range 24 {
		for x := range 80 {
			if screen.GetCell(x, y).Rune != BackdropChar {
				continue
			}
			dots++
			if shifted.GetCell(x, y).Rune != BackdropChar {
				t.Fatalf("Draw() put a backdrop dot at (%d, %d) outside the shaken pattern", x, y)
			}
		}
	}
	if dots == 0 {
		t.Error("Draw() drew no backdrop")
	}
}

func TestRenderSprite(t *testing.T) {
	cfg := quietConfig()
	sprite, err := ParseSprite([]byte("/00\\\n\\__/\n"), 4, 2)
	if err != nil {
		t.Fatalf("ParseSprite() = %v", err)
	}
	s := startedSession(cfg, 1)
	screen := core.NewScreen(80, 24)
	NewRenderer(cfg, sprite, 1).Draw(screen, s, Frame{})

	if out := screen.String(); !strings.Contains(out, "/00\\") || !strings.Contains(out, "\\__/") {
		t.Errorf("sprite not drawn:\n%s", out)
	}

	NewRenderer(cfg, nil, 1).Draw(screen, s, Frame{})
	if !strings.Contains(screen.String(), "████") {
		t.Error("placeholder not drawn without sprite")
	}
}

func TestKeyLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{" ", "Space"},
		{"left", "←"},
		{"x", "x"},
	}
	for _, tt := range tests {
		if got := KeyLabel(tt.in); got != tt.want {
			t.Errorf("KeyLabel(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
