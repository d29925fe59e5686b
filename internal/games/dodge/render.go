package dodge

import (
	"fmt"
	"math"
	"math/rand"
	"unicode/utf8"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Visual characters for rendering
const (
	CoinChar     = '●'
	ShieldChar   = '◆'
	PlayerChar   = '█'
	GhostChar    = '░'
	BackdropChar = '·'
)

// Renderer draws a session into a screen buffer. It reads the session and
// never changes it; shake offsets come from the renderer's own generator.
type Renderer struct {
	cellW, cellH float64
	shakeMaxPx   float64
	dashKey      string
	sprite       *Sprite
	rng          *rand.Rand
}

// NewRenderer creates a renderer. sprite may be nil for the solid placeholder.
func NewRenderer(cfg config.DodgeConfig, sprite *Sprite, seed int64) *Renderer {
	dashKey := "Space"
	if len(cfg.Input.Dash) > 0 {
		dashKey = KeyLabel(cfg.Input.Dash[0])
	}
	return &Renderer{
		cellW:      float64(cfg.Render.CellWidth),
		cellH:      float64(cfg.Render.CellHeight),
		shakeMaxPx: cfg.Effects.ShakeMaxPx,
		dashKey:    dashKey,
		sprite:     sprite,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// KeyLabel returns the display name of a bound key.
func KeyLabel(key string) string {
	switch key {
	case " ":
		return "Space"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return key
	}
}

// Frame carries driver state the session does not know about.
type Frame struct {
	Best   int
	Paused bool
}

// Draw renders the full frame: world layer first, then HUD and overlays.
func (r *Renderer) Draw(dst *core.Screen, s *Session, f Frame) {
	dst.Clear()

	if s.TooSmall() {
		w, h := s.Size()
		cfg := s.Config()
		needW := int(math.Ceil(cfg.MinWorldWidth() / r.cellW))
		needH := int(math.Ceil((cfg.World.PlayerBottom + cfg.World.PlayerHeight) / r.cellH))
		r.overlay(dst, "Window too small",
			fmt.Sprintf("%dx%d, need %dx%d", int(w/r.cellW), int(h/r.cellH), needW, needH))
		return
	}

	ox, oy := r.shakeOffset(s.shake)
	r.drawBackdrop(dst, s, ox, oy)
	r.drawBlocks(dst, s, ox, oy)
	r.drawCoins(dst, s, ox, oy)
	r.drawParticles(dst, s, ox, oy)
	r.drawPlayer(dst, s, ox, oy)

	r.drawHUD(dst, s, f)

	switch {
	case s.Over():
		best := fmt.Sprintf("Score: %d", s.Score())
		if f.Best > 0 {
			best += fmt.Sprintf("  Best: %d", f.Best)
		}
		r.overlay(dst, "Game Over", best, "Press R to retry, Esc for menu")
	case !s.Running():
		r.overlay(dst, "D O D G E", "Press Enter to start",
			fmt.Sprintf("←/→ move, %s dash", r.dashKey))
	case f.Paused:
		r.overlay(dst, "Paused", "Press P to continue")
	}
}

// shakeOffset returns a random cell offset proportional to the shake magnitude.
func (r *Renderer) shakeOffset(shake float64) (int, int) {
	if shake <= 0 {
		return 0, 0
	}
	px := (r.rng.Float64()*2 - 1) * shake * r.shakeMaxPx
	py := (r.rng.Float64()*2 - 1) * shake * r.shakeMaxPx
	return int(math.Round(px / r.cellW)), int(math.Round(py / r.cellH))
}

// cellRect converts a world box to the cells it covers.
func (r *Renderer) cellRect(b core.RectF, ox, oy int) core.Rect {
	x0 := int(math.Floor(b.X / r.cellW))
	y0 := int(math.Floor(b.Y / r.cellH))
	x1 := int(math.Ceil(b.Right() / r.cellW))
	y1 := int(math.Ceil(b.Bottom() / r.cellH))
	return core.NewRect(x0+ox, y0+oy, max(1, x1-x0), max(1, y1-y0))
}

func (r *Renderer) cellPoint(x, y float64, ox, oy int) (int, int) {
	return int(math.Floor(x/r.cellW)) + ox, int(math.Floor(y/r.cellH)) + oy
}

// drawBackdrop fills the field with a sparse dot pattern whose hue shifts
// from top to bottom and drifts with the score. The pattern moves with the
// shake offset like the rest of the world.
func (r *Renderer) drawBackdrop(dst *core.Screen, s *Session, ox, oy int) {
	h := dst.Height()
	for y := range h {
		py := y - oy
		hue := s.hueBase + 40 + 260*float64(py)/float64(max(1, h))
		c := core.HueColor(hue, false)
		for x := range dst.Width() {
			if ((x-ox)*7+py*13)%23 == 0 {
				dst.SetColor(x, y, BackdropChar, c)
			}
		}
	}
}

func (r *Renderer) drawBlocks(dst *core.Screen, s *Session, ox, oy int) {
	for _, b := range s.blocks {
		dst.DrawBox(r.cellRect(b.Rect(), ox, oy), core.HueColor(b.Hue, false))
	}
}

func (r *Renderer) drawCoins(dst *core.Screen, s *Session, ox, oy int) {
	for _, c := range s.coins {
		circle := c.Circle()
		x, y := r.cellPoint(circle.CX, circle.CY, ox, oy)
		ch := CoinChar
		if c.Kind == CoinShield {
			ch = ShieldChar
		}
		dst.SetColor(x, y, ch, core.HueColor(c.Hue, true))
	}
}

func (r *Renderer) drawParticles(dst *core.Screen, s *Session, ox, oy int) {
	for _, p := range s.particles {
		x, y := r.cellPoint(p.X, p.Y, ox, oy)
		var ch rune
		switch a := p.Fade(); {
		case a > 0.66:
			ch = '*'
		case a > 0.33:
			ch = '+'
		default:
			ch = '.'
		}
		dst.SetColor(x, y, ch, core.HueColor(p.Hue, p.Light))
	}
}

func (r *Renderer) drawPlayer(dst *core.Screen, s *Session, ox, oy int) {
	p := s.player
	box := r.cellRect(p.Rect(), ox, oy)
	halo := core.NewRect(box.X-1, box.Y-1, box.W+2, box.H+2)

	dashing := s.dash.Active()
	if dashing {
		dst.DrawRect(halo, GhostChar, core.HueColor(s.hueBase, true))
	}
	if s.shield.Held() {
		dst.DrawBox(halo, core.ColorBrightCyan)
	}

	color := core.ColorMagenta
	if dashing {
		color = core.ColorBrightMagenta
	}

	if r.sprite == nil {
		dst.DrawRect(box, PlayerChar, color)
		return
	}

	// The sprite has a fixed cell size, so anchor it at the nearest cell.
	sx := int(math.Round(p.X/r.cellW)) + ox
	sy := int(math.Round(p.Y/r.cellH)) + oy
	sw, sh := r.sprite.Size()
	for y := range sh {
		for x := range sw {
			if ch, ok := r.sprite.At(x, y); ok {
				dst.SetColor(sx+x, sy+y, ch, color)
			}
		}
	}
}

// drawHUD writes the status lines in the top right and the dash hint in
// the top left. It is drawn after the world so shake never moves it.
func (r *Renderer) drawHUD(dst *core.Screen, s *Session, f Frame) {
	right := dst.Width() - 1
	y := 0

	dst.DrawTextRight(right, y, fmt.Sprintf("Score: %d", s.Score()), core.ColorBrightWhite)
	y++
	if f.Best > 0 {
		dst.DrawTextRight(right, y, fmt.Sprintf("Best: %d", f.Best), core.ColorWhite)
		y++
	}

	dash := "Dash: Ready"
	if cd := s.dash.CooldownMs; cd > 0 {
		dash = fmt.Sprintf("Dash: %.1fs", cd/1000)
	}
	dst.DrawTextRight(right, y, dash, core.ColorWhite)
	y++

	if s.shield.Held() {
		dst.DrawTextRight(right, y, fmt.Sprintf("Shield: %ds", int(s.shield.RemainingMs/1000)), core.ColorBrightCyan)
	}

	if s.running && !s.hintShown {
		dst.DrawTextColor(1, 0, fmt.Sprintf("Press %s to dash", r.dashKey), core.ColorWhite)
	}
}

// overlay draws a centred box with one line per argument.
func (r *Renderer) overlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextCentered(box.Y+1+i*2, l, c)
	}
}
