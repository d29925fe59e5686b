package dodge

import (
	"math"
	"sort"
	"testing"

	"github.com/vovakirdan/tui-dodge/internal/config"
)

// widestOpening returns the widest horizontal span in [0, width) not
// covered by any block of the wave.
func widestOpening(blocks []Block, width float64) float64 {
	sorted := append([]Block(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	widest, cursor := 0.0, 0.0
	for _, b := range sorted {
		if b.X > cursor {
			widest = max(widest, b.X-cursor)
		}
		cursor = max(cursor, b.X+b.W)
	}
	return max(widest, width-cursor)
}

func TestPatternCols(t *testing.T) {
	g := NewPatternGen(config.DefaultDodgeConfig().Patterns, NewRNG(1))

	tests := []struct {
		t    float64
		want int
	}{
		{0, 6},
		{6.9, 6},
		{7, 7},
		{41.9, 11},
		{42, 12},
		{1000, 12},
	}
	for _, tt := range tests {
		if got := g.Cols(tt.t); got != tt.want {
			t.Errorf("Cols(%v) = %d, expected %d", tt.t, got, tt.want)
		}
	}
}

func TestSessionLanesFollowDifficulty(t *testing.T) {
	tests := []struct {
		preset config.DifficultyPreset
		start  int
		at20   int
	}{
		{config.DifficultyNormal, 6, 8},
		{config.DifficultyEasy, 6, 8},
		{config.DifficultyHard, 10, 12},
		{config.DifficultyFixed, 6, 6},
	}
	for _, tt := range tests {
		cfg := quietConfig()
		config.ApplyDodgePreset(&cfg, tt.preset)
		s := startedSession(cfg, 1)

		if got := s.Lanes(); got != tt.start {
			t.Errorf("%s: Lanes() at start = %d, expected %d", tt.preset, got, tt.start)
		}
		for range 1200 {
			s.Step(1.0/60, Input{})
		}
		if got := s.Snapshot().Lanes; got != tt.at20 {
			t.Errorf("%s: Lanes after 20s = %d, expected %d", tt.preset, got, tt.at20)
		}
	}
}

func TestWallGapGuarantee(t *testing.T) {
	narrow := config.DefaultDodgeConfig()
	narrow.World.PlayerWidth = 20
	narrow.Patterns.MinGapPx = 20

	tests := []struct {
		name string
		cfg  config.DodgeConfig
	}{
		{"default", config.DefaultDodgeConfig()},
		{"narrow lanes", narrow},
	}

	times := []float64{0, 7, 20, 35, 42, 120}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}
			minW := cfg.MinWorldWidth()
			widths := []float64{minW, minW + 12, 300, 333, 480, 640, 1000, 1920}

			for _, width := range widths {
				if width < minW {
					continue
				}
				for _, ts := range times {
					for seed := int64(0); seed < 40; seed++ {
						g := NewPatternGen(cfg.Patterns, NewRNG(seed))
						prevGap := -1
						for i := 0; i < 5; i++ {
							w := g.Generate(PatternWall, ts, 150, width)
							if got := widestOpening(w.Blocks, width); got < cfg.Patterns.MinGapPx-1e-9 {
								t.Fatalf("width %v t %v seed %d: widest opening %v < %v (lane %v gap %d span %d removed %d)",
									width, ts, seed, got, cfg.Patterns.MinGapPx, w.LaneW, w.GapCol, w.GapSpan, w.RemovedCol)
							}
							if w.GapCol == prevGap {
								t.Fatalf("width %v t %v seed %d: gap repeated at lane %d", width, ts, seed, w.GapCol)
							}
							if w.GapSpan < 1 || w.GapSpan > 2 {
								t.Fatalf("gap span %d out of range", w.GapSpan)
							}
							for _, b := range w.Blocks {
								if b.W > w.LaneW+1e-9 {
									t.Fatalf("wall block %vpx wider than its %vpx lane", b.W, w.LaneW)
								}
							}
							prevGap = w.GapCol
						}
					}
				}
			}
		})
	}
}

func TestWallOpensAdjacentLaneWhenNarrow(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	width := cfg.MinWorldWidth() // 12 lanes of 24px at t >= 42

	found := false
	for seed := int64(0); seed < 50 && !found; seed++ {
		g := NewPatternGen(cfg.Patterns, NewRNG(seed))
		w := g.Generate(PatternWall, 60, 150, width)
		if w.GapSpan != 1 {
			continue
		}
		found = true

		if w.RemovedCol < 0 {
			t.Fatalf("seed %d: single-lane gap of %vpx did not open a neighbour", seed, w.LaneW)
		}
		if w.RemovedCol != w.GapCol-1 && w.RemovedCol != w.GapCol+1 {
			t.Errorf("removed lane %d not adjacent to gap %d", w.RemovedCol, w.GapCol)
		}
		if len(w.Blocks) != w.Cols-2 {
			t.Errorf("blocks = %d, expected %d", len(w.Blocks), w.Cols-2)
		}
	}
	if !found {
		t.Fatal("no single-lane gap generated in 50 seeds")
	}
}

func TestWallWideLanesKeepAllBlocks(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	g := NewPatternGen(cfg.Patterns, NewRNG(4))
	w := g.Generate(PatternWall, 0, 150, 640)

	if w.RemovedCol != -1 {
		t.Errorf("RemovedCol = %d with %vpx lanes, expected -1", w.RemovedCol, w.LaneW)
	}
	if len(w.Blocks) != w.Cols-w.GapSpan {
		t.Errorf("blocks = %d, expected %d", len(w.Blocks), w.Cols-w.GapSpan)
	}
	for _, b := range w.Blocks {
		if b.Y != -40 || math.Abs(b.VY-150*1.02) > 1e-9 {
			t.Errorf("wall block at y %v vy %v", b.Y, b.VY)
		}
	}
	if g.WallCooldown() != 2600 {
		t.Errorf("WallCooldown() = %v, expected 2600", g.WallCooldown())
	}
}

func TestNoBackToBackWalls(t *testing.T) {
	cfg := config.DefaultDodgeConfig()

	for seed := int64(0); seed < 20; seed++ {
		g := NewPatternGen(cfg.Patterns, NewRNG(seed))
		walls := 0
		prev := patternNone
		for i := 0; i < 2000; i++ {
			cooling := g.WallCooldown() > 0
			w := g.Next(float64(i), 150, 640)
			if w.Kind == PatternWall {
				walls++
				if prev == PatternWall {
					t.Fatalf("seed %d step %d: wall followed a wall", seed, i)
				}
				if cooling {
					t.Fatalf("seed %d step %d: wall chosen during cooldown", seed, i)
				}
			}
			prev = w.Kind
			g.Tick(1300) // two ticks per default cooldown
		}
		if walls == 0 {
			t.Errorf("seed %d: no walls generated", seed)
		}
	}
}

func TestEligible(t *testing.T) {
	g := NewPatternGen(config.DefaultDodgeConfig().Patterns, NewRNG(1))
	if n := len(g.Eligible()); n != 4 {
		t.Errorf("fresh generator has %d options, expected 4", n)
	}

	g.Generate(PatternWall, 0, 150, 640)
	g.last = PatternWall
	for _, k := range g.Eligible() {
		if k == PatternWall {
			t.Fatal("wall eligible right after a wall")
		}
	}

	g.Tick(2600)
	for _, k := range g.Eligible() {
		if k == PatternWall {
			t.Fatal("wall eligible as the next pattern after a wall")
		}
	}

	g.last = PatternChunk
	if n := len(g.Eligible()); n != 4 {
		t.Errorf("after cooldown and another pattern: %d options, expected 4", n)
	}
}

func TestPatternShapes(t *testing.T) {
	cfg := config.DefaultDodgeConfig()

	for seed := int64(0); seed < 30; seed++ {
		g := NewPatternGen(cfg.Patterns, NewRNG(seed))

		rain := g.Generate(PatternLaneRain, 0, 150, 640)
		if n := len(rain.Blocks); n < 1 || n > 2 {
			t.Errorf("lane rain spawned %d blocks", n)
		}

		stag := g.Generate(PatternStaggered, 0, 150, 640)
		if n := len(stag.Blocks); n > (stag.Cols+1)/2 {
			t.Errorf("staggered spawned %d blocks for %d lanes", n, stag.Cols)
		}
		for _, b := range stag.Blocks {
			lane := int(b.X / stag.LaneW)
			if lane%2 != 0 {
				t.Errorf("staggered block in odd lane %d", lane)
			}
		}

		chunk := g.Generate(PatternChunk, 0, 150, 640)
		if len(chunk.Blocks) != 1 {
			t.Fatalf("chunk spawned %d blocks", len(chunk.Blocks))
		}
		b := chunk.Blocks[0]
		if b.W < 46 || b.W >= 76 || b.X < 0 || b.X+b.W > 640 || b.Y != -48 {
			t.Errorf("chunk block out of shape: %+v", b)
		}
	}
}
