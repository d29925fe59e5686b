package dodge

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// PatternKind identifies an obstacle wave layout.
type PatternKind int

const (
	PatternLaneRain  PatternKind = iota // 1-2 blocks in random lanes
	PatternStaggered                    // every other lane, some skipped
	PatternWall                         // every lane but a gap
	PatternChunk                        // one wide block

	patternNone PatternKind = -1
)

// String returns the pattern name.
func (k PatternKind) String() string {
	switch k {
	case PatternLaneRain:
		return "lane-rain"
	case PatternStaggered:
		return "staggered"
	case PatternWall:
		return "wall"
	case PatternChunk:
		return "chunk"
	default:
		return "none"
	}
}

// Wave is one batch of blocks spawned together.
type Wave struct {
	Kind   PatternKind
	Blocks []Block
	Cols   int
	LaneW  float64

	// Wall waves only.
	GapCol     int
	GapSpan    int
	RemovedCol int // lane opened to widen a narrow gap, -1 if none
}

// PatternGen chooses and lays out obstacle waves.
type PatternGen struct {
	cfg            config.DodgePatterns
	rng            RNG
	last           PatternKind
	lastGap        int
	wallCooldownMs float64
}

// NewPatternGen creates a generator drawing from rng.
func NewPatternGen(cfg config.DodgePatterns, rng RNG) *PatternGen {
	g := &PatternGen{cfg: cfg, rng: rng}
	g.Reset()
	return g
}

// Reset forgets the previous wave and clears the wall cooldown.
func (g *PatternGen) Reset() {
	g.last = patternNone
	g.lastGap = -1
	g.wallCooldownMs = 0
}

// Tick counts the wall cooldown down by dtMs.
func (g *PatternGen) Tick(dtMs float64) {
	if g.wallCooldownMs > 0 {
		g.wallCooldownMs = math.Max(0, g.wallCooldownMs-dtMs)
	}
}

// WallCooldown returns the milliseconds until a wall may be chosen again.
func (g *PatternGen) WallCooldown() float64 {
	return g.wallCooldownMs
}

// Last returns the most recently generated pattern.
func (g *PatternGen) Last() PatternKind {
	return g.last
}

// Eligible returns the patterns that may be chosen next.
// Walls are excluded during their cooldown and right after another wall.
func (g *PatternGen) Eligible() []PatternKind {
	if g.wallCooldownMs > 0 || g.last == PatternWall {
		return []PatternKind{PatternLaneRain, PatternStaggered, PatternChunk}
	}
	return []PatternKind{PatternLaneRain, PatternStaggered, PatternWall, PatternChunk}
}

// Cols returns the lane count at curve time t.
func (g *PatternGen) Cols(t float64) int {
	extra := math.Min(float64(g.cfg.MaxExtraCols), t/g.cfg.ColGrowthSecs)
	return g.cfg.BaseCols + int(math.Floor(extra))
}

// Next picks an eligible pattern and lays it out across width.
// Blocks come back without a hue; fall is the current base fall speed.
func (g *PatternGen) Next(t, fall, width float64) Wave {
	options := g.Eligible()
	kind := options[g.rng.Intn(len(options))]
	w := g.Generate(kind, t, fall, width)
	g.last = kind
	return w
}

// Generate lays out a wave of the given kind without consulting eligibility.
func (g *PatternGen) Generate(kind PatternKind, t, fall, width float64) Wave {
	cols := g.Cols(t)
	wave := Wave{
		Kind:       kind,
		Cols:       cols,
		LaneW:      width / float64(cols),
		GapCol:     -1,
		RemovedCol: -1,
	}

	switch kind {
	case PatternLaneRain:
		g.laneRain(&wave, fall)
	case PatternStaggered:
		g.staggered(&wave, fall)
	case PatternWall:
		g.wall(&wave, fall)
	default:
		g.chunk(&wave, fall, width)
	}
	return wave
}

func (g *PatternGen) laneRain(w *Wave, fall float64) {
	n := 1 + g.rng.Intn(2)
	for range n {
		col := g.rng.Intn(w.Cols)
		bw := math.Max(18, math.Min(w.LaneW-10, between(g.rng, 22, 44)))
		w.Blocks = append(w.Blocks, Block{
			X:  float64(col)*w.LaneW + between(g.rng, 0, w.LaneW-bw),
			Y:  -40,
			W:  bw,
			H:  between(g.rng, 18, 24),
			VY: fall,
		})
	}
}

func (g *PatternGen) staggered(w *Wave, fall float64) {
	bw := math.Max(16, math.Min(w.LaneW-8, between(g.rng, 22, 32)))
	for col := 0; col < w.Cols; col += 2 {
		if g.rng.Float64() < g.cfg.StaggerSkipChance {
			continue
		}
		w.Blocks = append(w.Blocks, Block{
			X:  float64(col)*w.LaneW + between(g.rng, 0, w.LaneW-bw),
			Y:  -40,
			W:  bw,
			H:  between(g.rng, 16, 22),
			VY: fall * g.cfg.StaggerSpeedScale,
		})
	}
}

func (g *PatternGen) wall(w *Wave, fall float64) {
	span := g.cfg.GapColsMin + g.rng.Intn(g.cfg.GapColsMax-g.cfg.GapColsMin+1)
	maxGap := w.Cols - span
	gap := g.rng.Intn(maxGap)

	// Never open the gap in the same lane twice running.
	if gap == g.lastGap {
		dir := 1
		if g.rng.Float64() < 0.5 {
			dir = -1
		}
		shifted := core.Clamp(gap+dir, 0, maxGap)
		if shifted == gap {
			shifted = core.Clamp(gap-dir, 0, maxGap)
		}
		gap = shifted
	}
	g.lastGap = gap
	w.GapCol = gap
	w.GapSpan = span

	remove := -1
	if w.LaneW*float64(span) < g.cfg.MinGapPx {
		if gap > 0 {
			remove = gap - 1
		} else {
			remove = gap + span
		}
	}
	w.RemovedCol = remove

	// Blocks stay inside their own lane so the gap keeps its full width.
	bw := math.Min(w.LaneW, math.Max(16, w.LaneW-6))
	for col := 0; col < w.Cols; col++ {
		if col >= gap && col < gap+span {
			continue
		}
		h := between(g.rng, 16, 24)
		if col == remove {
			continue
		}
		w.Blocks = append(w.Blocks, Block{
			X:  float64(col) * w.LaneW,
			Y:  -40,
			W:  bw,
			H:  h,
			VY: fall * g.cfg.WallSpeedScale,
		})
	}

	g.wallCooldownMs = g.cfg.WallCooldownMs
}

func (g *PatternGen) chunk(w *Wave, fall, width float64) {
	bw := between(g.rng, 46, 76)
	h := between(g.rng, 24, 32)
	w.Blocks = append(w.Blocks, Block{
		X:  between(g.rng, 0, width-bw),
		Y:  -48,
		W:  bw,
		H:  h,
		VY: fall * g.cfg.ChunkSpeedScale,
	})
}
