package dodge

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Input strategies for headless runs.

// IdleInput never presses anything.
func IdleInput() InputSource {
	return InputFunc(core.NewInputFrame)
}

// RandomInput wanders left and right and dashes occasionally.
func RandomInput(rng RNG) InputSource {
	dir := core.ActionNone
	return InputFunc(func() core.InputFrame {
		in := core.NewInputFrame()
		if rng.Float64() < 0.05 {
			dir = []core.Action{core.ActionNone, core.ActionLeft, core.ActionRight}[rng.Intn(3)]
		}
		if dir != core.ActionNone {
			in.Set(dir)
		}
		if rng.Float64() < 0.01 {
			in.Set(core.ActionDash)
		}
		return in
	})
}

// Autopilot steers away from blocks about to land on the player, chases
// coins when nothing threatens, and dashes when a hit is imminent.
func Autopilot(s *Session) InputSource {
	const (
		lookahead  = 0.6  // seconds
		margin     = 6.0  // px
		dashWindow = 0.12 // seconds before impact that triggers a dash
	)
	return InputFunc(func() core.InputFrame {
		in := core.NewInputFrame()
		p := s.Player()
		px, _ := p.Center()

		left, right := math.Inf(1), math.Inf(-1)
		soonest := math.Inf(1)
		for _, b := range s.Blocks() {
			if b.X+b.W < p.X-margin || b.X > p.X+p.W+margin {
				continue
			}
			gap := p.Y - (b.Y + b.H)
			if b.Y > p.Y+p.H || b.VY <= 0 {
				continue
			}
			impact := math.Max(0, gap/b.VY)
			if impact > lookahead {
				continue
			}
			left = math.Min(left, b.X)
			right = math.Max(right, b.X+b.W)
			soonest = math.Min(soonest, impact)
		}

		target := px
		if !math.IsInf(soonest, 1) {
			w, _ := s.Size()
			toLeft := left - margin - p.W/2
			toRight := right + margin + p.W/2
			switch {
			case toLeft < p.W/2:
				target = toRight
			case toRight > w-p.W/2:
				target = toLeft
			case px-toLeft < toRight-px:
				target = toLeft
			default:
				target = toRight
			}
			if soonest < dashWindow && s.Dash().Ready() {
				in.Set(core.ActionDash)
			}
		} else if c, ok := nearestCoin(s, px); ok {
			target = c
		}

		switch {
		case target < px-2:
			in.Set(core.ActionLeft)
		case target > px+2:
			in.Set(core.ActionRight)
		}
		return in
	})
}

// nearestCoin returns the x of the closest pickup still above the player.
func nearestCoin(s *Session, px float64) (float64, bool) {
	p := s.Player()
	best, found := 0.0, false
	for _, c := range s.Coins() {
		if c.Y > p.Y {
			continue
		}
		cx := c.X + c.R
		if !found || math.Abs(cx-px) < math.Abs(best-px) {
			best, found = cx, true
		}
	}
	return best, found
}
